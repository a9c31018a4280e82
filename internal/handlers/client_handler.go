package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ClientHandler struct {
	clients client.Repository
}

func NewClientHandler(clients client.Repository) *ClientHandler {
	return &ClientHandler{clients: clients}
}

type ClientRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes"`
}

// ClientPatch leaves nil fields untouched.
type ClientPatch struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1"`
	Phone     *string `json:"phone" binding:"omitempty,min=1"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Reason    *string `json:"reason"`
	Notes     *string `json:"notes"`
}

// ======================================================
// LIST / SEARCH
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, clients)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	cl := &models.Client{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     normalizeEmail(req.Email),
		Reason:    req.Reason,
		Notes:     req.Notes,
	}
	if err := h.clients.Create(c.Request.Context(), cl); err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, cl)
}

func (h *ClientHandler) Get(c *gin.Context) {
	cl, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, cl)
}

func (h *ClientHandler) Update(c *gin.Context) {
	cl, ok := h.load(c)
	if !ok {
		return
	}

	var req ClientPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if req.FirstName != nil {
		cl.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		cl.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		cl.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		cl.Email = normalizeEmail(*req.Email)
	}
	if req.Reason != nil {
		cl.Reason = *req.Reason
	}
	if req.Notes != nil {
		cl.Notes = *req.Notes
	}

	if err := h.clients.Update(c.Request.Context(), cl); err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, cl)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) load(c *gin.Context) (*models.Client, bool) {
	id, ok := idParam(c)
	if !ok {
		return nil, false
	}

	cl, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return nil, false
		}
		writeError(c, err)
		return nil, false
	}
	return cl, true
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}
