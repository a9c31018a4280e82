package availability

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SetDayInput struct {
	Date         string
	StartTime    string
	EndTime      string
	SlotMinutes  int
	BlockedSlots []string

	// IsActive=false closes the day. true is only a request; the stored
	// flag is always recomputed.
	IsActive *bool

	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type SetDay struct {
	days  domain.Repository
	cache cache.SlotCache
	audit *audit.Dispatcher
}

func NewSetDay(days domain.Repository, c cache.SlotCache, a *audit.Dispatcher) *SetDay {
	return &SetDay{days: days, cache: c, audit: a}
}

// Execute replaces the whole configuration of one date. Validation runs
// against the live appointments read under the same per-date exclusion as
// the write, so a concurrent booking cannot slip in between.
func (uc *SetDay) Execute(ctx context.Context, in SetDayInput) (*models.Availability, error) {
	if !domain.ValidDate(in.Date) {
		return nil, domain.ErrInvalidDate("date", in.Date)
	}

	slotMinutes := in.SlotMinutes
	if slotMinutes == 0 {
		slotMinutes = domain.DefaultSlotMinutes
	}

	change := domain.Change{
		Date:         in.Date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		SlotMinutes:  slotMinutes,
		BlockedSlots: in.BlockedSlots,
		Close:        in.IsActive != nil && !*in.IsActive,
	}

	saved, err := uc.days.ReplaceDay(ctx, in.Date, func(live []models.Appointment) (*models.Availability, error) {
		return domain.ValidateChange(change, live)
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.Date)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   audit.ActionAvailabilitySet,
		Entity:   "availability",
		EntityID: &saved.ID,
		Metadata: map[string]any{
			"date":          saved.Date,
			"start_time":    saved.StartTime,
			"end_time":      saved.EndTime,
			"slot_minutes":  saved.SlotMinutes,
			"blocked_slots": saved.BlockedSlots,
			"is_active":     saved.IsActive,
		},
	})

	return saved, nil
}
