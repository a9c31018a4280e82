package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	ActionAppointmentCreated       = "appointment_created"
	ActionAppointmentStatusChanged = "appointment_status_changed"
	ActionAppointmentConflict      = "appointment_conflict"
	ActionAvailabilitySet          = "availability_set"
	ActionPaymentCreated           = "payment_created"
	ActionPaymentConfirmed         = "payment_confirmed"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Filter narrows a listing. Zero values match everything.
type Filter struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

type Store interface {
	Write(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

func (ev Event) entry() models.AuditLog {
	meta := "{}"
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = string(b)
		}
	}

	return models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: meta,
	}
}
