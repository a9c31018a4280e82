package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type MeHandler struct {
	clients client.Repository
}

func NewMeHandler(clients client.Repository) *MeHandler {
	return &MeHandler{clients: clients}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Não autenticado.")
		return
	}

	var record *models.Client
	if id.ClientID != nil {
		cl, err := h.clients.Get(c.Request.Context(), *id.ClientID)
		if err != nil && !errors.Is(err, client.ErrNotFound) {
			writeError(c, err)
			return
		}
		record = cl
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        id.SubjectID,
			"role":      id.Role,
			"client_id": id.ClientID,
		},
		"client": record,
	})
}
