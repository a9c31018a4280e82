package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type fakeGateway struct {
	calls int
	last  CheckoutRequest
	err   error
}

func (g *fakeGateway) CreateCheckout(_ context.Context, req CheckoutRequest) (CheckoutLink, error) {
	g.calls++
	g.last = req
	if g.err != nil {
		return CheckoutLink{}, g.err
	}
	return CheckoutLink{PreferenceID: "pref-1", URL: "https://mp.example/checkout/pref-1"}, nil
}

func seed(t *testing.T, store *memory.Store, status string) *models.Appointment {
	t.Helper()
	ap := &models.Appointment{Date: "2030-03-10", Time: "09:00", ClientID: 7, Status: status}
	require.NoError(t, store.Reserve(context.Background(), ap, nil))
	return ap
}

func code(err error) string {
	be, _ := httperr.AsBusiness(err)
	return be.Code
}

func TestCheckout_CreatesPendingPaymentOnce(t *testing.T) {
	store := memory.New()
	gw := &fakeGateway{}
	ap := seed(t, store, "pending_payment")
	uc := NewCheckout(store.Payments(), store, gw, Pricing{Amount: 150, Currency: "BRL"}, nil)

	pay, err := uc.Execute(context.Background(), CheckoutInput{AppointmentID: ap.ID})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, pay.Status)
	assert.Equal(t, "https://mp.example/checkout/pref-1", pay.CheckoutURL)
	assert.Equal(t, 150.0, gw.last.Amount)
	assert.NotEmpty(t, pay.ExternalReference)

	again, err := uc.Execute(context.Background(), CheckoutInput{AppointmentID: ap.ID})
	require.NoError(t, err)
	assert.Equal(t, pay.ID, again.ID)
	assert.Equal(t, 1, gw.calls)
}

func TestCheckout_Rejections(t *testing.T) {
	store := memory.New()
	reserved := seed(t, store, "reserved")

	_, err := NewCheckout(store.Payments(), store, nil, Pricing{}, nil).Execute(context.Background(), CheckoutInput{AppointmentID: reserved.ID})
	assert.Equal(t, CodePaymentsDisabled, code(err))

	uc := NewCheckout(store.Payments(), store, &fakeGateway{}, Pricing{}, nil)

	_, err = uc.Execute(context.Background(), CheckoutInput{AppointmentID: reserved.ID})
	assert.Equal(t, CodeInvalidState, code(err))

	_, err = uc.Execute(context.Background(), CheckoutInput{AppointmentID: 999})
	assert.Equal(t, "appointment_not_found", code(err))

	stranger := uint(8)
	_, err = uc.Execute(context.Background(), CheckoutInput{AppointmentID: reserved.ID, OwnerClientID: &stranger})
	assert.Equal(t, "appointment_not_found", code(err))
}

func TestCheckout_GatewayError(t *testing.T) {
	store := memory.New()
	ap := seed(t, store, "pending_payment")
	gw := &fakeGateway{err: errors.New("boom")}

	_, err := NewCheckout(store.Payments(), store, gw, Pricing{}, nil).Execute(context.Background(), CheckoutInput{AppointmentID: ap.ID})
	require.Error(t, err)
	_, ok := httperr.AsBusiness(err)
	assert.False(t, ok)

	_, err = store.Payments().GetByAppointment(context.Background(), ap.ID)
	assert.Error(t, err)
}

func TestConfirm_MarksPaymentAndAppointmentPaid(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	ap := seed(t, store, "pending_payment")

	pay, err := NewCheckout(store.Payments(), store, &fakeGateway{}, Pricing{Amount: 100, Currency: "BRL"}, nil).
		Execute(ctx, CheckoutInput{AppointmentID: ap.ID})
	require.NoError(t, err)

	confirmed, err := NewConfirm(store.Payments(), store, cache.Noop{}, nil).Execute(ctx, pay.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, confirmed.Status)
	require.NotNil(t, confirmed.PaidAt)

	got, err := store.Get(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", got.Status)

	list, err := NewListByClient(store.Payments()).Execute(ctx, ap.ClientID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = NewConfirm(store.Payments(), store, cache.Noop{}, nil).Execute(ctx, 999, nil)
	assert.Equal(t, CodeNotFound, code(err))
}

func TestConfirm_CancelledAppointment(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	ap := seed(t, store, "pending_payment")

	pay, err := NewCheckout(store.Payments(), store, &fakeGateway{}, Pricing{}, nil).Execute(ctx, CheckoutInput{AppointmentID: ap.ID})
	require.NoError(t, err)

	ap.Status = "cancelled"
	require.NoError(t, store.Update(ctx, ap))

	_, err = NewConfirm(store.Payments(), store, cache.Noop{}, nil).Execute(ctx, pay.ID, nil)
	assert.Equal(t, "invalid_state", code(err))

	got, err := store.Payments().Get(ctx, pay.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, got.Status)
}
