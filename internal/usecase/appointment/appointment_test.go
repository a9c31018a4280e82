package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const day = "2030-03-10"

var fixedNow = time.Date(2030, 3, 9, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store  *memory.Store
	book   *Book
	update *UpdateStatus
	ana    models.Client
}

func newFixture(t *testing.T, initial string) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.New()
	ana := models.Client{FirstName: "Ana", LastName: "Silva", Reason: "checkup"}
	require.NoError(t, store.Clients().Create(ctx, &ana))

	book, err := NewBook(store, store, store.Clients(), cache.Noop{}, nil, initial)
	require.NoError(t, err)
	book.now = func() time.Time { return fixedNow }

	update := NewUpdateStatus(store, cache.Noop{}, nil)
	update.now = func() time.Time { return fixedNow }

	return &fixture{store: store, book: book, update: update, ana: ana}
}

func (f *fixture) setDay(t *testing.T, date, start, end string, minutes int, blocked ...string) error {
	t.Helper()
	_, err := f.store.ReplaceDay(context.Background(), date, func(live []models.Appointment) (*models.Availability, error) {
		return availability.ValidateChange(availability.Change{
			Date: date, StartTime: start, EndTime: end, SlotMinutes: minutes, BlockedSlots: blocked,
		}, live)
	})
	return err
}

func (f *fixture) slots(t *testing.T, date string) []string {
	t.Helper()
	ctx := context.Background()
	d, err := f.store.GetDay(ctx, date)
	require.NoError(t, err)
	appts, err := f.store.ListByDate(ctx, date)
	require.NoError(t, err)

	out := []string{}
	for _, s := range availability.ComputeSlots(d, appts) {
		out = append(out, s.Time+":"+string(s.State))
	}
	return out
}

func code(err error) string {
	be, _ := httperr.AsBusiness(err)
	return be.Code
}

func TestBook_Scenario(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()

	require.NoError(t, f.setDay(t, day, "09:00", "11:00", 60))
	assert.Equal(t, []string{"09:00:bookable", "10:00:bookable"}, f.slots(t, day))

	v, err := f.book.Execute(ctx, BookInput{Date: day, Time: "10:00", PersonID: f.ana.ID})
	require.NoError(t, err)
	assert.Equal(t, "reserved", v.Status)
	require.NotNil(t, v.Client)
	assert.Equal(t, "checkup", v.Client.Reason)
	assert.Equal(t, []string{"09:00:bookable", "10:00:reserved"}, f.slots(t, day))

	_, err = f.book.Execute(ctx, BookInput{Date: day, Time: "10:00", PersonID: f.ana.ID})
	assert.Equal(t, domain.CodeSlotUnavailable, code(err))

	err = f.setDay(t, day, "09:00", "11:00", 60, "10:00")
	assert.Equal(t, availability.CodeCannotBlockReservedSlot, code(err))

	_, err = f.update.Execute(ctx, UpdateStatusInput{AppointmentID: v.ID, Status: "cancelled"})
	require.NoError(t, err)

	require.NoError(t, f.setDay(t, day, "09:00", "11:00", 60, "10:00"))
	assert.Equal(t, []string{"09:00:bookable", "10:00:blocked"}, f.slots(t, day))
}

func TestBook_Rejections(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	require.NoError(t, f.setDay(t, day, "09:00", "12:00", 60, "11:00"))
	require.NoError(t, f.setDay(t, "2030-03-08", "09:00", "12:00", 60))

	tests := []struct {
		name string
		in   BookInput
		want string
	}{
		{name: "no person", in: BookInput{Date: day, Time: "09:00"}, want: domain.CodePersonRequired},
		{name: "bad date", in: BookInput{Date: "2030-13-01", Time: "09:00", PersonID: f.ana.ID}, want: availability.CodeInvalidDate},
		{name: "bad time", in: BookInput{Date: day, Time: "9h", PersonID: f.ana.ID}, want: availability.CodeMalformedTime},
		{name: "single digit hour", in: BookInput{Date: day, Time: "9:00", PersonID: f.ana.ID}, want: availability.CodeMalformedTime},
		{name: "past date", in: BookInput{Date: "2030-03-08", Time: "09:00", PersonID: f.ana.ID}, want: domain.CodePastDate},
		{name: "off grid", in: BookInput{Date: day, Time: "09:30", PersonID: f.ana.ID}, want: domain.CodeSlotUnavailable},
		{name: "blocked", in: BookInput{Date: day, Time: "11:00", PersonID: f.ana.ID}, want: domain.CodeSlotUnavailable},
		{name: "outside window", in: BookInput{Date: day, Time: "12:00", PersonID: f.ana.ID}, want: domain.CodeSlotUnavailable},
		{name: "unconfigured day", in: BookInput{Date: "2030-03-11", Time: "09:00", PersonID: f.ana.ID}, want: domain.CodeSlotUnavailable},
		{name: "unknown client", in: BookInput{Date: day, Time: "09:00", PersonID: 9999}, want: domain.CodePersonNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.book.Execute(ctx, tt.in)
			assert.Equal(t, tt.want, code(err))
		})
	}
}

// racingRepo applies a schedule change after Book has validated the slot
// and before the reservation takes the date lock.
type racingRepo struct {
	*memory.Store
	change func()
}

func (r *racingRepo) Reserve(ctx context.Context, ap *models.Appointment, check domain.SlotCheck) error {
	r.change()
	return r.Store.Reserve(ctx, ap, check)
}

func TestBook_ScheduleChangeDuringReserve(t *testing.T) {
	tests := []struct {
		name   string
		change func(t *testing.T, f *fixture) error
	}{
		{name: "window narrowed", change: func(t *testing.T, f *fixture) error {
			return f.setDay(t, day, "09:00", "10:00", 60)
		}},
		{name: "slot blocked", change: func(t *testing.T, f *fixture) error {
			return f.setDay(t, day, "09:00", "11:00", 60, "10:00")
		}},
		{name: "grid changed", change: func(t *testing.T, f *fixture) error {
			return f.setDay(t, day, "09:00", "11:00", 45)
		}},
		{name: "day closed", change: func(t *testing.T, f *fixture) error {
			_, err := f.store.ReplaceDay(context.Background(), day, func(live []models.Appointment) (*models.Availability, error) {
				return availability.ValidateChange(availability.Change{
					Date: day, StartTime: "09:00", EndTime: "11:00", SlotMinutes: 60, Close: true,
				}, live)
			})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "")
			ctx := context.Background()
			require.NoError(t, f.setDay(t, day, "09:00", "11:00", 60))

			repo := &racingRepo{Store: f.store, change: func() { require.NoError(t, tt.change(t, f)) }}
			book, err := NewBook(f.store, repo, f.store.Clients(), cache.Noop{}, nil, "")
			require.NoError(t, err)
			book.now = func() time.Time { return fixedNow }

			_, err = book.Execute(ctx, BookInput{Date: day, Time: "10:00", PersonID: f.ana.ID})
			assert.Equal(t, domain.CodeSlotUnavailable, code(err))

			live, err := f.store.ListByDate(ctx, day)
			require.NoError(t, err)
			assert.Empty(t, domain.Live(live))

			// Nothing was reserved, so the same change applies cleanly again.
			assert.NoError(t, tt.change(t, f))
		})
	}
}

func TestBook_PastSlotToday(t *testing.T) {
	f := newFixture(t, "")
	f.book.now = func() time.Time { return time.Date(2030, 3, 10, 9, 30, 0, 0, time.UTC) }
	require.NoError(t, f.setDay(t, day, "09:00", "11:00", 60))

	_, err := f.book.Execute(context.Background(), BookInput{Date: day, Time: "09:00", PersonID: f.ana.ID})
	assert.Equal(t, domain.CodeSlotUnavailable, code(err))

	_, err = f.book.Execute(context.Background(), BookInput{Date: day, Time: "10:00", PersonID: f.ana.ID})
	assert.NoError(t, err)
}

func TestBook_ConfiguredInitialStatus(t *testing.T) {
	f := newFixture(t, "pending_payment")
	require.NoError(t, f.setDay(t, day, "09:00", "10:00", 60))

	v, err := f.book.Execute(context.Background(), BookInput{Date: day, Time: "09:00", PersonID: f.ana.ID})
	require.NoError(t, err)
	assert.Equal(t, "pending_payment", v.Status)
	assert.Equal(t, "09:00", v.Time)
}

func TestNewBook_RejectsCancelledInitialStatus(t *testing.T) {
	store := memory.New()
	_, err := NewBook(store, store, store.Clients(), cache.Noop{}, nil, "cancelled")
	assert.Error(t, err)
}

func TestBook_ConcurrentSingleWinner(t *testing.T) {
	f := newFixture(t, "")
	require.NoError(t, f.setDay(t, day, "09:00", "10:00", 60))

	const n = 30
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.book.Execute(context.Background(), BookInput{Date: day, Time: "09:00", PersonID: f.ana.ID})

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
				return
			}
			assert.Contains(t, []string{domain.CodeSlotUnavailable, domain.CodeSlotAlreadyTaken}, code(err))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	live, err := f.store.ListByDate(context.Background(), day)
	require.NoError(t, err)
	assert.Len(t, domain.Live(live), 1)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	require.NoError(t, f.setDay(t, day, "09:00", "11:00", 60))

	v, err := f.book.Execute(ctx, BookInput{Date: day, Time: "09:00", PersonID: f.ana.ID})
	require.NoError(t, err)

	other := uint(999)
	_, err = f.update.Execute(ctx, UpdateStatusInput{AppointmentID: v.ID, Status: "cancelled", OwnerClientID: &other})
	assert.Equal(t, domain.CodeNotFound, code(err))

	_, err = f.update.Execute(ctx, UpdateStatusInput{AppointmentID: v.ID, Status: "paid", OwnerClientID: &f.ana.ID})
	assert.Equal(t, domain.CodeForbidden, code(err))

	_, err = f.update.Execute(ctx, UpdateStatusInput{AppointmentID: v.ID, Status: "done"})
	assert.Equal(t, domain.CodeInvalidStatus, code(err))

	_, err = f.update.Execute(ctx, UpdateStatusInput{AppointmentID: 12345, Status: "paid"})
	assert.Equal(t, domain.CodeNotFound, code(err))

	ap, err := f.update.Execute(ctx, UpdateStatusInput{AppointmentID: v.ID, Status: "paid"})
	require.NoError(t, err)
	require.NotNil(t, ap.PaidAt)

	ap, err = f.update.Execute(ctx, UpdateStatusInput{AppointmentID: v.ID, Status: "cancelled", OwnerClientID: &f.ana.ID})
	require.NoError(t, err)
	require.NotNil(t, ap.CancelledAt)

	_, err = f.update.Execute(ctx, UpdateStatusInput{AppointmentID: v.ID, Status: "reserved"})
	assert.Equal(t, domain.CodeInvalidState, code(err))

	// The freed slot can be booked again.
	_, err = f.book.Execute(ctx, BookInput{Date: day, Time: "09:00", PersonID: f.ana.ID})
	assert.NoError(t, err)
}

func TestListings(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	require.NoError(t, f.setDay(t, day, "09:00", "11:00", 60))
	require.NoError(t, f.setDay(t, "2030-04-02", "09:00", "11:00", 60))

	_, err := f.book.Execute(ctx, BookInput{Date: day, Time: "10:00", PersonID: f.ana.ID})
	require.NoError(t, err)
	_, err = f.book.Execute(ctx, BookInput{Date: "2030-04-02", Time: "09:00", PersonID: f.ana.ID})
	require.NoError(t, err)
	require.NoError(t, f.store.Reserve(ctx, &models.Appointment{Date: day, Time: "09:00", ClientID: 4242, Status: "reserved"}, nil))

	byDate, err := NewListAppointmentsByDate(f.store, f.store.Clients()).Execute(ctx, day)
	require.NoError(t, err)
	require.Len(t, byDate, 2)
	assert.Equal(t, "09:00", byDate[0].Time)
	assert.Nil(t, byDate[0].Client)
	require.NotNil(t, byDate[1].Client)
	assert.Equal(t, "Ana", byDate[1].Client.FirstName)

	byMonth, err := NewListAppointmentsByMonth(f.store, f.store.Clients()).Execute(ctx, "2030-03")
	require.NoError(t, err)
	assert.Len(t, byMonth, 2)

	mine, err := NewListMine(f.store, f.store.Clients()).Execute(ctx, f.ana.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
