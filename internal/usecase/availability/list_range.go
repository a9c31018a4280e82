package availability

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// NormalizeRange resolves optional bounds: none means the current month,
// one means that single day, reversed bounds are swapped. The result may
// cover at most domain.MaxRangeDays days.
func NormalizeRange(from, to string, now time.Time) (string, string, error) {
	if from != "" && !domain.ValidDate(from) {
		return "", "", domain.ErrInvalidDate("from", from)
	}
	if to != "" && !domain.ValidDate(to) {
		return "", "", domain.ErrInvalidDate("to", to)
	}

	switch {
	case from == "" && to == "":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := first.AddDate(0, 1, -1)
		return first.Format(domain.DateLayout), last.Format(domain.DateLayout), nil
	case from == "":
		return to, to, nil
	case to == "":
		return from, from, nil
	case from > to:
		from, to = to, from
	}

	start, _ := time.Parse(domain.DateLayout, from)
	end, _ := time.Parse(domain.DateLayout, to)
	if end.Sub(start) >= domain.MaxRangeDays*24*time.Hour {
		return "", "", domain.ErrRangeTooLong(from, to)
	}
	return from, to, nil
}

type ListRange struct {
	days domain.Repository
	now  func() time.Time
}

func NewListRange(days domain.Repository) *ListRange {
	return &ListRange{days: days, now: timezone.Now}
}

func (uc *ListRange) Execute(ctx context.Context, from, to string) ([]models.Availability, error) {
	from, to, err := NormalizeRange(from, to, uc.now())
	if err != nil {
		return nil, err
	}
	return uc.days.ListDays(ctx, from, to)
}
