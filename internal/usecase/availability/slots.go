package availability

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
)

// slotReader computes a day's classified slots, going through the cache.
type slotReader struct {
	days  domain.Repository
	appts appointment.Repository
	cache cache.SlotCache
}

func (r slotReader) load(ctx context.Context, date string) ([]domain.SlotView, error) {
	if slots, ok := r.cache.Get(ctx, date); ok {
		return slots, nil
	}

	day, err := r.days.GetDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get availability %s: %w", date, err)
	}

	appts, err := r.appts.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list appointments %s: %w", date, err)
	}

	slots := domain.ComputeSlots(day, appts)
	r.cache.Put(ctx, date, slots)
	return slots, nil
}
