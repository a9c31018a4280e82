package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	setDay    *ucAvailability.SetDay
	getDay    *ucAvailability.GetDay
	listRange *ucAvailability.ListRange
	summary   *ucAvailability.Summary
	listSlots *ucAvailability.ListSlots
}

func NewAvailabilityHandler(
	setDay *ucAvailability.SetDay,
	getDay *ucAvailability.GetDay,
	listRange *ucAvailability.ListRange,
	summary *ucAvailability.Summary,
	listSlots *ucAvailability.ListSlots,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		setDay:    setDay,
		getDay:    getDay,
		listRange: listRange,
		summary:   summary,
		listSlots: listSlots,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// SetDayRequest replaces the whole day; there are no partial updates.
type SetDayRequest struct {
	StartTime    string   `json:"start_time" binding:"required,clock"`
	EndTime      string   `json:"end_time" binding:"required,clock"`
	SlotMinutes  int      `json:"slot_minutes"`
	BlockedSlots []string `json:"blocked_slots" binding:"dive,clock"`
	IsActive     *bool    `json:"is_active"`
}

type RangeQuery struct {
	From string `form:"from" binding:"omitempty,ymd"`
	To   string `form:"to" binding:"omitempty,ymd"`
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *AvailabilityHandler) Get(c *gin.Context) {
	day, err := h.getDay.Execute(c.Request.Context(), c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, day)
}

func (h *AvailabilityHandler) Put(c *gin.Context) {
	var req SetDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	id, _ := middleware.IdentityFrom(c)

	day, err := h.setDay.Execute(c.Request.Context(), ucAvailability.SetDayInput{
		Date:         c.Param("date"),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		SlotMinutes:  req.SlotMinutes,
		BlockedSlots: req.BlockedSlots,
		IsActive:     req.IsActive,
		ActorID:      &id.SubjectID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, day)
}

func (h *AvailabilityHandler) ListRange(c *gin.Context) {
	var q RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	days, err := h.listRange.Execute(c.Request.Context(), q.From, q.To)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, days)
}

func (h *AvailabilityHandler) Summary(c *gin.Context) {
	var q RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	days, err := h.summary.Execute(c.Request.Context(), q.From, q.To)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, days)
}

// Slots returns the bookable slots; admins asking for view=admin get every
// classified slot instead.
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	all := c.Query("view") == "admin" && id.IsAdmin()

	slots, err := h.listSlots.Execute(c.Request.Context(), c.Param("date"), all)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, slots)
}
