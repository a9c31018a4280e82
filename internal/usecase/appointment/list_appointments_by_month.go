package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
)

type ListAppointmentsByMonth struct {
	repo   domain.Repository
	people domain.PersonDirectory
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	people domain.PersonDirectory,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo:   repo,
		people: people,
	}
}

// Execute takes month as YYYY-MM.
func (uc *ListAppointmentsByMonth) Execute(ctx context.Context, month string) ([]dto.AppointmentView, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, availability.ErrInvalidDate("month", month)
	}
	end := start.AddDate(0, 1, -1)

	appts, err := uc.repo.ListByDateRange(
		ctx,
		start.Format(availability.DateLayout),
		end.Format(availability.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	return toViews(ctx, uc.people, appts)
}
