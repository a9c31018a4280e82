package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type DaySummary struct {
	Date     string `json:"date"`
	IsActive bool   `json:"is_active"`
	domain.Summary
}

// Summary builds the calendar view: one entry per configured date.
type Summary struct {
	days  domain.Repository
	appts appointment.Repository
	cache cache.SlotCache
	now   func() time.Time
}

func NewSummary(days domain.Repository, appts appointment.Repository, c cache.SlotCache) *Summary {
	return &Summary{days: days, appts: appts, cache: c, now: timezone.Now}
}

func (uc *Summary) Execute(ctx context.Context, from, to string) ([]DaySummary, error) {
	from, to, err := NormalizeRange(from, to, uc.now())
	if err != nil {
		return nil, err
	}

	days, err := uc.days.ListDays(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}

	// Appointments are fetched once, on the first cache miss.
	var byDate map[string][]models.Appointment

	out := make([]DaySummary, 0, len(days))
	for i := range days {
		day := &days[i]

		slots, ok := uc.cache.Get(ctx, day.Date)
		if !ok {
			if byDate == nil {
				appts, err := uc.appts.ListByDateRange(ctx, from, to)
				if err != nil {
					return nil, fmt.Errorf("list appointments: %w", err)
				}
				byDate = make(map[string][]models.Appointment)
				for _, ap := range appts {
					byDate[ap.Date] = append(byDate[ap.Date], ap)
				}
			}

			slots = domain.ComputeSlots(day, byDate[day.Date])
			uc.cache.Put(ctx, day.Date, slots)
		}

		out = append(out, DaySummary{
			Date:     day.Date,
			IsActive: day.IsActive,
			Summary:  domain.Summarize(slots),
		})
	}

	return out, nil
}
