package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucPayment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/payment"
)

type PaymentHandler struct {
	confirm      *ucPayment.Confirm
	listByClient *ucPayment.ListByClient
}

func NewPaymentHandler(confirm *ucPayment.Confirm, listByClient *ucPayment.ListByClient) *PaymentHandler {
	return &PaymentHandler{confirm: confirm, listByClient: listByClient}
}

func (h *PaymentHandler) Confirm(c *gin.Context) {
	payID, ok := idParam(c)
	if !ok {
		return
	}

	id, _ := middleware.IdentityFrom(c)

	pay, err := h.confirm.Execute(c.Request.Context(), payID, &id.SubjectID)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, pay)
}

// ListByClient serves GET /clients/:id/payments.
func (h *PaymentHandler) ListByClient(c *gin.Context) {
	clientID, ok := idParam(c)
	if !ok {
		return
	}

	payments, err := h.listByClient.Execute(c.Request.Context(), clientID)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, payments)
}
