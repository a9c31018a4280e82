package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucPayment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book        *ucAppointment.Book
	update      *ucAppointment.UpdateStatus
	listByDate  *ucAppointment.ListAppointmentsByDate
	listByMonth *ucAppointment.ListAppointmentsByMonth
	listMine    *ucAppointment.ListMine
	checkout    *ucPayment.Checkout
}

func NewAppointmentHandler(
	book *ucAppointment.Book,
	update *ucAppointment.UpdateStatus,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	listMine *ucAppointment.ListMine,
	checkout *ucPayment.Checkout,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:        book,
		update:      update,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		listMine:    listMine,
		checkout:    checkout,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Date  string `json:"date" binding:"required,ymd"`
	Time  string `json:"time" binding:"required,clock"`
	Notes string `json:"notes" binding:"max=500"`

	// Admins book on behalf of a client; clients always book for themselves.
	ClientID uint `json:"client_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListAppointmentsQuery struct {
	Date  string `form:"date" binding:"omitempty,ymd"`
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	id, _ := middleware.IdentityFrom(c)

	personID := req.ClientID
	if !id.IsAdmin() {
		personID = 0
		if id.ClientID != nil {
			personID = *id.ClientID
		}
	}

	view, err := h.book.Execute(c.Request.Context(), ucAppointment.BookInput{
		Date:     req.Date,
		Time:     req.Time,
		PersonID: personID,
		Notes:    req.Notes,
		ActorID:  &id.SubjectID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, view)
}

// ======================================================
// LIST
// ======================================================

// List takes either ?date=YYYY-MM-DD or ?month=YYYY-MM.
func (h *AppointmentHandler) List(c *gin.Context) {
	var q ListAppointmentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	ctx := c.Request.Context()

	switch {
	case q.Date != "":
		views, err := h.listByDate.Execute(ctx, q.Date)
		if err != nil {
			writeError(c, err)
			return
		}
		httpresp.List(c, views)
	case q.Month != "":
		views, err := h.listByMonth.Execute(ctx, q.Month)
		if err != nil {
			writeError(c, err)
			return
		}
		httpresp.List(c, views)
	default:
		httperr.BadRequest(c, "missing_filter", "Informe date ou month.")
	}
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	if id.ClientID == nil {
		writeError(c, httperr.ErrBusiness(domain.CodePersonRequired))
		return
	}

	views, err := h.listMine.Execute(c.Request.Context(), *id.ClientID)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, views)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	apID, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	id, _ := middleware.IdentityFrom(c)

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateStatusInput{
		AppointmentID: apID,
		Status:        req.Status,
		ActorID:       &id.SubjectID,
		OwnerClientID: ownerScope(id),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *AppointmentHandler) Checkout(c *gin.Context) {
	apID, ok := idParam(c)
	if !ok {
		return
	}

	id, _ := middleware.IdentityFrom(c)

	pay, err := h.checkout.Execute(c.Request.Context(), ucPayment.CheckoutInput{
		AppointmentID: apID,
		ActorID:       &id.SubjectID,
		OwnerClientID: ownerScope(id),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, pay)
}

// ownerScope limits non-admins to their own records. A client token always
// carries a client id; anything else gets an id that matches nothing.
func ownerScope(id middleware.Identity) *uint {
	if id.IsAdmin() {
		return nil
	}
	if id.ClientID != nil {
		return id.ClientID
	}
	none := uint(0)
	return &none
}
