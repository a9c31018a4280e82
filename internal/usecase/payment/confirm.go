package payment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// Confirm marks a payment as received and moves its appointment to paid.
type Confirm struct {
	payments domain.Repository
	appts    appointment.Repository
	cache    cache.SlotCache
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewConfirm(
	payments domain.Repository,
	appts appointment.Repository,
	c cache.SlotCache,
	a *audit.Dispatcher,
) *Confirm {
	return &Confirm{payments: payments, appts: appts, cache: c, audit: a, now: timezone.Now}
}

func (uc *Confirm) Execute(ctx context.Context, paymentID uint, actorID *uint) (*models.Payment, error) {
	pay, err := uc.payments.Get(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(CodeNotFound)
		}
		return nil, err
	}
	if pay.Status == models.PaymentStatusPaid {
		return pay, nil
	}

	ap, err := uc.appts.Get(ctx, pay.AppointmentID)
	if err != nil {
		if errors.Is(err, appointment.ErrNotFound) {
			return nil, httperr.ErrBusiness(appointment.CodeNotFound)
		}
		return nil, err
	}

	now := uc.now()
	if err := appointment.Transition(ap, appointment.StatusPaid, now); err != nil {
		return nil, err
	}
	if err := uc.appts.Update(ctx, ap); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, ap.Date)

	pay.Status = models.PaymentStatusPaid
	pay.PaidAt = &now
	if err := uc.payments.Update(ctx, pay); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   audit.ActionPaymentConfirmed,
		Entity:   "payment",
		EntityID: &pay.ID,
		Metadata: map[string]any{"appointment_id": ap.ID},
	})

	return pay, nil
}
