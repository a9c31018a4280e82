package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const methodMercadoPago = "mercadopago"

type Pricing struct {
	Amount   float64
	Currency string
	BackURL  string
}

type CheckoutInput struct {
	AppointmentID uint

	ActorID *uint
	// OwnerClientID limits checkout to the client's own appointment.
	OwnerClientID *uint
}

type Checkout struct {
	payments domain.Repository
	appts    appointment.Repository
	gateway  Gateway
	pricing  Pricing
	audit    *audit.Dispatcher
}

// NewCheckout accepts a nil gateway; Execute then reports payments_disabled.
func NewCheckout(
	payments domain.Repository,
	appts appointment.Repository,
	gateway Gateway,
	pricing Pricing,
	a *audit.Dispatcher,
) *Checkout {
	return &Checkout{
		payments: payments,
		appts:    appts,
		gateway:  gateway,
		pricing:  pricing,
		audit:    a,
	}
}

// Execute returns the pending payment of an appointment awaiting payment,
// creating the checkout on first call.
func (uc *Checkout) Execute(ctx context.Context, in CheckoutInput) (*models.Payment, error) {
	if uc.gateway == nil {
		return nil, httperr.ErrBusiness(CodePaymentsDisabled)
	}

	ap, err := uc.appts.Get(ctx, in.AppointmentID)
	if err != nil {
		if errors.Is(err, appointment.ErrNotFound) {
			return nil, httperr.ErrBusiness(appointment.CodeNotFound)
		}
		return nil, err
	}
	if in.OwnerClientID != nil && ap.ClientID != *in.OwnerClientID {
		return nil, httperr.ErrBusiness(appointment.CodeNotFound)
	}

	existing, err := uc.payments.GetByAppointment(ctx, ap.ID)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	if appointment.Status(ap.Status) != appointment.StatusPendingPayment {
		return nil, httperr.ErrBusinessWith(CodeInvalidState, map[string]any{
			"status": ap.Status,
			"want":   string(appointment.StatusPendingPayment),
		})
	}

	ref := uuid.NewString()
	link, err := uc.gateway.CreateCheckout(ctx, CheckoutRequest{
		ExternalReference: ref,
		Title:             fmt.Sprintf("Consulta %s %s", ap.Date, ap.Time),
		Amount:            uc.pricing.Amount,
		Currency:          uc.pricing.Currency,
		BackURL:           uc.pricing.BackURL,
	})
	if err != nil {
		return nil, err
	}

	pay := &models.Payment{
		ClientID:          ap.ClientID,
		AppointmentID:     ap.ID,
		Amount:            uc.pricing.Amount,
		Currency:          uc.pricing.Currency,
		Method:            methodMercadoPago,
		Status:            models.PaymentStatusPending,
		ExternalReference: ref,
		PreferenceID:      link.PreferenceID,
		CheckoutURL:       link.URL,
	}

	if err := uc.payments.Create(ctx, pay); err != nil {
		// Lost a race with a concurrent checkout of the same appointment.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return uc.payments.GetByAppointment(ctx, ap.ID)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   audit.ActionPaymentCreated,
		Entity:   "payment",
		EntityID: &pay.ID,
		Metadata: map[string]any{"appointment_id": ap.ID, "amount": pay.Amount, "currency": pay.Currency},
	})

	return pay, nil
}
