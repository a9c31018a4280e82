package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type UpdateStatusInput struct {
	AppointmentID uint
	Status        string

	ActorID *uint
	// OwnerClientID restricts the change to the client's own appointment,
	// and to cancellation only. Nil for admins.
	OwnerClientID *uint
}

type UpdateStatus struct {
	repo  domain.Repository
	cache cache.SlotCache
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateStatus(repo domain.Repository, c cache.SlotCache, a *audit.Dispatcher) *UpdateStatus {
	return &UpdateStatus{repo: repo, cache: c, audit: a, now: timezone.Now}
}

// Execute moves an appointment to a new status. Cancelling needs no slot
// bookkeeping; the next slot computation sees it free.
func (uc *UpdateStatus) Execute(ctx context.Context, in UpdateStatusInput) (*models.Appointment, error) {
	to, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.Get(ctx, in.AppointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeNotFound)
		}
		return nil, err
	}

	if in.OwnerClientID != nil {
		if ap.ClientID != *in.OwnerClientID {
			// Someone else's appointment is indistinguishable from a missing one.
			return nil, httperr.ErrBusiness(domain.CodeNotFound)
		}
		if to != domain.StatusCancelled {
			return nil, httperr.ErrBusiness(domain.CodeForbidden)
		}
	}

	from := ap.Status
	if err := domain.Transition(ap, to, uc.now()); err != nil {
		return nil, err
	}
	if from == ap.Status {
		return ap, nil
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, ap.Date)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   audit.ActionAppointmentStatusChanged,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"from": from, "to": ap.Status},
	})

	return ap, nil
}
