package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition applies a status change. Freeing the slot on cancel needs no
// extra step: availability is always derived from live appointments.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	from := Status(ap.Status)
	if err := CanTransition(from, to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	ap.Status = string(to)

	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusPaid:
		ap.PaidAt = &now
	}
	return nil
}

// Live drops cancelled appointments.
func Live(appts []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, 0, len(appts))
	for _, ap := range appts {
		if Occupies(Status(ap.Status)) {
			out = append(out, ap)
		}
	}
	return out
}
