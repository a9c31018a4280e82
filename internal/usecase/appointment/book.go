package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	Date     string
	Time     string
	PersonID uint
	Notes    string

	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type Book struct {
	days    availability.Repository
	repo    domain.Repository
	people  domain.PersonDirectory
	cache   cache.SlotCache
	audit   *audit.Dispatcher
	initial domain.Status
	now     func() time.Time
}

// NewBook fails when initialStatus is unknown or cancelled.
func NewBook(
	days availability.Repository,
	repo domain.Repository,
	people domain.PersonDirectory,
	c cache.SlotCache,
	a *audit.Dispatcher,
	initialStatus string,
) (*Book, error) {
	initial, err := domain.InitialStatus(initialStatus)
	if err != nil {
		return nil, err
	}

	return &Book{
		days:    days,
		repo:    repo,
		people:  people,
		cache:   c,
		audit:   a,
		initial: initial,
		now:     timezone.Now,
	}, nil
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Book) Execute(ctx context.Context, in BookInput) (*dto.AppointmentView, error) {

	if in.PersonID == 0 {
		return nil, httperr.ErrBusiness(domain.CodePersonRequired)
	}

	// --------------------------------------------------
	// 1. Parse
	// --------------------------------------------------
	if !availability.ValidDate(in.Date) {
		return nil, availability.ErrInvalidDate("date", in.Date)
	}
	clock, ok := availability.NormalizeClock(in.Time)
	if !ok {
		return nil, availability.ErrMalformedTime("time", in.Time)
	}

	now := uc.now()
	if availability.IsBeforeToday(in.Date, now) {
		return nil, httperr.ErrBusinessWith(domain.CodePastDate, map[string]any{"date": in.Date})
	}

	// --------------------------------------------------
	// 2. Person must exist
	// --------------------------------------------------
	people, err := uc.people.Lookup(ctx, []uint{in.PersonID})
	if err != nil {
		return nil, fmt.Errorf("lookup client: %w", err)
	}
	if _, ok := people[in.PersonID]; !ok {
		return nil, httperr.ErrBusinessWith(domain.CodePersonNotFound, map[string]any{"client_id": in.PersonID})
	}

	// --------------------------------------------------
	// 3. Optimistic check against the current slot grid
	// --------------------------------------------------
	check := slotCheck(in.Date, clock, now)

	day, err := uc.days.GetDay(ctx, in.Date)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.ListByDate(ctx, in.Date)
	if err != nil {
		return nil, err
	}
	if err := check(day, existing); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Atomic reserve, re-checking the grid under the date lock
	// --------------------------------------------------
	ap := &models.Appointment{
		Date:     in.Date,
		Time:     clock,
		ClientID: in.PersonID,
		Status:   string(uc.initial),
		Notes:    in.Notes,
	}

	if err := uc.repo.Reserve(ctx, ap, check); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			log.Warn().
				Str("date", in.Date).
				Str("time", clock).
				Uint("client_id", in.PersonID).
				Msg("booking lost race for slot")

			uc.audit.Dispatch(audit.Event{
				UserID:   in.ActorID,
				Action:   audit.ActionAppointmentConflict,
				Entity:   "appointment",
				Metadata: map[string]any{"date": in.Date, "time": clock, "client_id": in.PersonID},
			})
			return nil, httperr.ErrBusiness(domain.CodeSlotAlreadyTaken)
		}
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.Date)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"date": ap.Date, "time": ap.Time, "status": ap.Status},
	})

	// --------------------------------------------------
	// 5. Person projection
	// --------------------------------------------------
	v := dto.NewAppointmentView(*ap, people)
	return &v, nil
}

// slotCheck accepts the booking only while the slot is bookable for a client
// at now. It runs once before the reserve and again inside it, so an
// availability edit committed in between is seen.
func slotCheck(date, clock string, now time.Time) domain.SlotCheck {
	return func(day *models.Availability, existing []models.Appointment) error {
		bookable := availability.ForClient(date, availability.ComputeSlots(day, existing), now)
		if _, ok := availability.Find(bookable, clock); !ok {
			return httperr.ErrBusiness(domain.CodeSlotUnavailable)
		}
		return nil
	}
}
