package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type ListSlots struct {
	reader slotReader
	now    func() time.Time
}

func NewListSlots(days domain.Repository, appts appointment.Repository, c cache.SlotCache) *ListSlots {
	return &ListSlots{
		reader: slotReader{days: days, appts: appts, cache: c},
		now:    timezone.Now,
	}
}

// Execute returns what a client may book. Admins pass all=true to see every
// classified slot, past ones included.
func (uc *ListSlots) Execute(ctx context.Context, date string, all bool) ([]domain.SlotView, error) {
	if !domain.ValidDate(date) {
		return nil, domain.ErrInvalidDate("date", date)
	}

	slots, err := uc.reader.load(ctx, date)
	if err != nil {
		return nil, err
	}

	if all {
		return slots, nil
	}
	return domain.ForClient(date, slots, uc.now()), nil
}
