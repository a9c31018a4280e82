package availability

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const day = "2030-03-10"

func reserve(t *testing.T, store *memory.Store, date, clock string) *models.Appointment {
	t.Helper()
	ap := &models.Appointment{Date: date, Time: clock, ClientID: 1, Status: "reserved"}
	require.NoError(t, store.Reserve(context.Background(), ap, nil))
	return ap
}

func assertCode(t *testing.T, err error, code string) httperr.BusinessError {
	t.Helper()
	require.Error(t, err)
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok, "expected business error, got %v", err)
	assert.Equal(t, code, be.Code)
	return be
}

func times(slots []domain.SlotView) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time+":"+string(s.State))
	}
	return out
}

func TestSetDay_StoresNormalizedRecord(t *testing.T) {
	store := memory.New()
	uc := NewSetDay(store, cache.Noop{}, nil)

	got, err := uc.Execute(context.Background(), SetDayInput{
		Date: day, StartTime: "09:00", EndTime: "12:00",
		BlockedSlots: []string{"11:00", "10:30", "11:00"},
	})
	require.NoError(t, err)

	assert.Equal(t, "09:00", got.StartTime)
	assert.Equal(t, domain.DefaultSlotMinutes, got.SlotMinutes)
	assert.Equal(t, models.ClockList{"11:00"}, got.BlockedSlots)
	assert.True(t, got.IsActive)
}

func TestSetDay_NarrowingLeavesOriginal(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	uc := NewSetDay(store, cache.Noop{}, nil)

	_, err := uc.Execute(ctx, SetDayInput{Date: day, StartTime: "08:00", EndTime: "18:00", SlotMinutes: 60})
	require.NoError(t, err)
	reserve(t, store, day, "09:00")

	_, err = uc.Execute(ctx, SetDayInput{Date: day, StartTime: "10:00", EndTime: "18:00", SlotMinutes: 60})
	be := assertCode(t, err, domain.CodeAppointmentOutsideWindow)
	assert.Equal(t, "09:00", be.Details["time"])

	stored, err := store.GetDay(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "08:00", stored.StartTime)
}

func TestSetDay_CloseGuard(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	uc := NewSetDay(store, cache.Noop{}, nil)
	closed := false

	_, err := uc.Execute(ctx, SetDayInput{Date: day, StartTime: "09:00", EndTime: "11:00", SlotMinutes: 60})
	require.NoError(t, err)
	reserve(t, store, day, "10:00")

	_, err = uc.Execute(ctx, SetDayInput{Date: day, StartTime: "09:00", EndTime: "11:00", SlotMinutes: 60, IsActive: &closed})
	be := assertCode(t, err, domain.CodeCannotCloseDay)
	assert.Equal(t, 1, be.Details["appointments"])
}

func TestSetDay_CloseEmptyDay(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	closed := false

	got, err := NewSetDay(store, cache.Noop{}, nil).Execute(ctx, SetDayInput{
		Date: day, StartTime: "09:00", EndTime: "11:00", SlotMinutes: 60, IsActive: &closed,
	})
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	slots, err := NewListSlots(store, store, cache.Noop{}).Execute(ctx, day, true)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSetDay_ClientCannotForceActive(t *testing.T) {
	store := memory.New()
	open := true

	got, err := NewSetDay(store, cache.Noop{}, nil).Execute(context.Background(), SetDayInput{
		Date: day, StartTime: "09:00", EndTime: "11:00", SlotMinutes: 60,
		BlockedSlots: []string{"09:00", "10:00"}, IsActive: &open,
	})
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestGetDay(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	_, err := NewGetDay(store).Execute(ctx, day)
	assertCode(t, err, domain.CodeNotFound)

	_, err = NewGetDay(store).Execute(ctx, "2030-02-30")
	assertCode(t, err, domain.CodeInvalidDate)
}

func TestNormalizeRange(t *testing.T) {
	now := time.Date(2030, 2, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name, from, to   string
		wantFrom, wantTo string
		wantErr          bool
	}{
		{name: "current month", wantFrom: "2030-02-01", wantTo: "2030-02-28"},
		{name: "only from", from: "2030-03-01", wantFrom: "2030-03-01", wantTo: "2030-03-01"},
		{name: "only to", to: "2030-03-05", wantFrom: "2030-03-05", wantTo: "2030-03-05"},
		{name: "swapped", from: "2030-03-09", to: "2030-03-01", wantFrom: "2030-03-01", wantTo: "2030-03-09"},
		{name: "bad date", from: "03/01/2030", wantErr: true},
		{name: "full leap year", from: "2032-01-01", to: "2032-12-31", wantFrom: "2032-01-01", wantTo: "2032-12-31"},
		{name: "too long", from: "2030-01-01", to: "2031-01-02", wantErr: true},
		{name: "too long swapped", from: "2999-12-31", to: "1900-01-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := NormalizeRange(tt.from, tt.to, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}

func TestSummary_CountsPerDay(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	set := NewSetDay(store, cache.Noop{}, nil)

	_, err := set.Execute(ctx, SetDayInput{Date: "2030-03-10", StartTime: "09:00", EndTime: "12:00", SlotMinutes: 60, BlockedSlots: []string{"11:00"}})
	require.NoError(t, err)
	_, err = set.Execute(ctx, SetDayInput{Date: "2030-03-11", StartTime: "09:00", EndTime: "10:00", SlotMinutes: 30})
	require.NoError(t, err)
	reserve(t, store, "2030-03-10", "09:00")

	got, err := NewSummary(store, store, cache.Noop{}).Execute(ctx, "2030-03-01", "2030-03-31")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "2030-03-10", got[0].Date)
	assert.True(t, got[0].IsActive)
	assert.Equal(t, domain.Summary{Total: 3, Bookable: 1, Reserved: 1, Blocked: 1}, got[0].Summary)
	assert.Equal(t, domain.Summary{Total: 2, Bookable: 2}, got[1].Summary)
}

func TestSummary_RejectsLongRange(t *testing.T) {
	store := memory.New()

	_, err := NewSummary(store, store, cache.Noop{}).Execute(context.Background(), "1900-01-01", "2999-12-31")
	be := assertCode(t, err, domain.CodeInvalidDate)
	assert.Equal(t, domain.MaxRangeDays, be.Details["max_days"])

	_, err = NewListRange(store).Execute(context.Background(), "2030-01-01", "2031-06-30")
	assertCode(t, err, domain.CodeInvalidDate)
}

func TestListSlots_ClientViewTrimsPastOnToday(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	_, err := NewSetDay(store, cache.Noop{}, nil).Execute(ctx, SetDayInput{Date: day, StartTime: "09:00", EndTime: "12:00", SlotMinutes: 60})
	require.NoError(t, err)
	reserve(t, store, day, "11:00")

	uc := NewListSlots(store, store, cache.Noop{})
	uc.now = func() time.Time { return time.Date(2030, 3, 10, 9, 30, 0, 0, time.UTC) }

	client, err := uc.Execute(ctx, day, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00:bookable"}, times(client))

	admin, err := uc.Execute(ctx, day, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00:bookable", "10:00:bookable", "11:00:reserved"}, times(admin))
}

func TestListSlots_CacheInvalidatedOnSetDay(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	c := cache.NewRedisSlotCache(client, time.Minute)

	store := memory.New()
	ctx := context.Background()
	set := NewSetDay(store, c, nil)
	list := NewListSlots(store, store, c)

	_, err := set.Execute(ctx, SetDayInput{Date: day, StartTime: "09:00", EndTime: "11:00", SlotMinutes: 60})
	require.NoError(t, err)

	first, err := list.Execute(ctx, day, true)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.True(t, mr.Exists("clinic:slots:"+day))

	_, err = set.Execute(ctx, SetDayInput{Date: day, StartTime: "09:00", EndTime: "11:00", SlotMinutes: 30})
	require.NoError(t, err)
	assert.False(t, mr.Exists("clinic:slots:"+day))

	second, err := list.Execute(ctx, day, true)
	require.NoError(t, err)
	assert.Len(t, second, 4)
}
