package availability

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// BuildFunc receives the live appointments of the date, read inside the same
// exclusive section as the write, and returns the record to persist.
type BuildFunc func(live []models.Appointment) (*models.Availability, error)

type Repository interface {
	// GetDay returns nil, nil when the date was never configured.
	GetDay(ctx context.Context, date string) (*models.Availability, error)

	// ListDays returns the configured dates in [from, to], ordered by date.
	ListDays(ctx context.Context, from, to string) ([]models.Availability, error)

	// ReplaceDay upserts the record built by build. Booking on the same date
	// cannot interleave between the read of live appointments and the write.
	ReplaceDay(ctx context.Context, date string, build BuildFunc) (*models.Availability, error)
}
