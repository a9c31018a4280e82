package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
)

type ListAppointmentsByDate struct {
	repo   domain.Repository
	people domain.PersonDirectory
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	people domain.PersonDirectory,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo:   repo,
		people: people,
	}
}

// Execute lists every appointment of the date, cancelled ones included.
func (uc *ListAppointmentsByDate) Execute(ctx context.Context, date string) ([]dto.AppointmentView, error) {
	if !availability.ValidDate(date) {
		return nil, availability.ErrInvalidDate("date", date)
	}

	appts, err := uc.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	return toViews(ctx, uc.people, appts)
}
