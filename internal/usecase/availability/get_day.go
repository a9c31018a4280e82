package availability

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type GetDay struct {
	days domain.Repository
}

func NewGetDay(days domain.Repository) *GetDay {
	return &GetDay{days: days}
}

func (uc *GetDay) Execute(ctx context.Context, date string) (*models.Availability, error) {
	if !domain.ValidDate(date) {
		return nil, domain.ErrInvalidDate("date", date)
	}

	day, err := uc.days.GetDay(ctx, date)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, domain.ErrNotFound(date)
	}
	return day, nil
}
