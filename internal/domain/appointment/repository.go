package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ErrSlotTaken is returned by Reserve when a live appointment already holds
// the (date, time) pair at commit time.
var ErrSlotTaken = errors.New("slot already taken")

// ErrNotFound is returned when an appointment id does not exist.
var ErrNotFound = errors.New("appointment not found")

// SlotCheck re-validates a slot inside the exclusive section of Reserve. It
// receives the day configuration (nil when the date was never configured)
// and the live appointments of the date, read under the same lock.
type SlotCheck func(day *models.Availability, live []models.Appointment) error

type Repository interface {
	// -------- Reads --------
	ListByDate(ctx context.Context, date string) ([]models.Appointment, error)
	ListByDateRange(ctx context.Context, from, to string) ([]models.Appointment, error)
	ListByClient(ctx context.Context, clientID uint) ([]models.Appointment, error)
	Get(ctx context.Context, id uint) (*models.Appointment, error)

	// -------- Writes --------

	// Reserve inserts ap only if no live appointment exists at
	// (ap.Date, ap.Time) and check, when non-nil, accepts the current day.
	// Both run atomically with the insert; a concurrent ReplaceDay of the
	// same date cannot interleave.
	Reserve(ctx context.Context, ap *models.Appointment, check SlotCheck) error
	Update(ctx context.Context, ap *models.Appointment) error
}

// Person is the read-only projection of a client shown next to appointments.
type Person struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Reason    string `json:"reason_for_visit"`
}

// PersonDirectory resolves client ids to display projections. Unknown ids are
// simply absent from the result.
type PersonDirectory interface {
	Lookup(ctx context.Context, ids []uint) (map[uint]Person, error)
}
