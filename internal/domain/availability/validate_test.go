package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func change(start, end string, step int, blocked ...string) Change {
	return Change{
		Date:         "2026-03-10",
		StartTime:    start,
		EndTime:      end,
		SlotMinutes:  step,
		BlockedSlots: blocked,
	}
}

func requireCode(t *testing.T, err error, code string) httperr.BusinessError {
	t.Helper()
	require.Error(t, err)
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok, "expected business error, got %v", err)
	require.Equal(t, code, be.Code)
	return be
}

func TestValidateChange_Parsing(t *testing.T) {
	_, err := ValidateChange(Change{Date: "2026-02-30", StartTime: "09:00", EndTime: "10:00", SlotMinutes: 60}, nil)
	requireCode(t, err, CodeInvalidDate)

	_, err = ValidateChange(change("9h", "10:00", 60), nil)
	be := requireCode(t, err, CodeMalformedTime)
	assert.Equal(t, "start_time", be.Details["field"])

	_, err = ValidateChange(change("09:00", "25:00", 60), nil)
	be = requireCode(t, err, CodeMalformedTime)
	assert.Equal(t, "end_time", be.Details["field"])

	_, err = ValidateChange(change("09:00", "10:00", 60, "xx"), nil)
	be = requireCode(t, err, CodeMalformedTime)
	assert.Equal(t, "blocked_slots", be.Details["field"])

	_, err = ValidateChange(change("09:00", "10:00", 60, "9:00"), nil)
	be = requireCode(t, err, CodeMalformedTime)
	assert.Equal(t, "9:00", be.Details["value"])

	_, err = ValidateChange(change("09:00", "10:00", 2), nil)
	requireCode(t, err, CodeInvalidSlotMinutes)

	_, err = ValidateChange(change("09:00", "10:00", 241), nil)
	requireCode(t, err, CodeInvalidSlotMinutes)
}

func TestValidateChange_InvalidWindow(t *testing.T) {
	_, err := ValidateChange(change("10:00", "10:00", 30), nil)
	requireCode(t, err, CodeInvalidWindow)

	_, err = ValidateChange(change("11:00", "10:00", 30), nil)
	requireCode(t, err, CodeInvalidWindow)
}

func TestValidateChange_NormalizesRecord(t *testing.T) {
	rec, err := ValidateChange(change("09:00", "12:00", 60, "11:00", "10:00", "11:00", "10:30", "13:00"), nil)
	require.NoError(t, err)

	assert.Equal(t, "09:00", rec.StartTime)
	assert.Equal(t, "12:00", rec.EndTime)
	assert.Equal(t, models.ClockList{"10:00", "11:00"}, rec.BlockedSlots)
	assert.True(t, rec.IsActive)
}

func TestValidateChange_FullyBlockedWithoutAppointmentsIsClosed(t *testing.T) {
	rec, err := ValidateChange(change("09:00", "11:00", 60, "09:00", "10:00"), nil)
	require.NoError(t, err)
	assert.False(t, rec.IsActive)
	assert.Empty(t, ComputeSlots(rec, nil))

	closed := change("09:00", "11:00", 60)
	closed.Close = true
	rec, err = ValidateChange(closed, nil)
	require.NoError(t, err)
	assert.False(t, rec.IsActive)
	assert.Equal(t, models.ClockList{"09:00", "10:00"}, rec.BlockedSlots)
}

func TestValidateChange_ClosureGuard(t *testing.T) {
	live := []models.Appointment{appt(1, "09:00", "reserved")}

	closed := change("09:00", "11:00", 60)
	closed.Close = true
	_, err := ValidateChange(closed, live)
	be := requireCode(t, err, CodeCannotCloseDay)
	assert.Equal(t, 1, be.Details["appointments"])

	_, err = ValidateChange(change("09:00", "11:00", 60, "09:00", "10:00"), live)
	requireCode(t, err, CodeCannotCloseDay)

	// cancelled appointments do not hold the day open
	cancelled := []models.Appointment{appt(1, "09:00", "cancelled")}
	rec, err := ValidateChange(closed, cancelled)
	require.NoError(t, err)
	assert.False(t, rec.IsActive)
}

func TestValidateChange_WindowNarrowing(t *testing.T) {
	live := []models.Appointment{appt(1, "09:00", "reserved")}

	_, err := ValidateChange(change("10:00", "18:00", 60), live)
	be := requireCode(t, err, CodeAppointmentOutsideWindow)
	assert.Equal(t, "09:00", be.Details["time"])

	// off the new grid also orphans the booking
	_, err = ValidateChange(change("08:30", "18:00", 60), live)
	requireCode(t, err, CodeAppointmentOutsideWindow)

	// trailing partial slot does not count as inside
	late := []models.Appointment{appt(2, "17:30", "reserved")}
	_, err = ValidateChange(change("08:00", "18:00", 30), late)
	require.NoError(t, err)
	_, err = ValidateChange(change("08:00", "17:45", 30), late)
	requireCode(t, err, CodeAppointmentOutsideWindow)

	rec, err := ValidateChange(change("08:00", "12:00", 60), live)
	require.NoError(t, err)
	assert.True(t, rec.IsActive)
}

func TestValidateChange_CannotBlockReservedSlot(t *testing.T) {
	live := []models.Appointment{appt(1, "10:00", "reserved")}

	_, err := ValidateChange(change("09:00", "11:00", 60, "10:00"), live)
	be := requireCode(t, err, CodeCannotBlockReservedSlot)
	assert.Equal(t, "10:00", be.Details["time"])

	rec, err := ValidateChange(change("09:00", "11:00", 60, "09:00"), live)
	require.NoError(t, err)
	assert.True(t, rec.IsActive)
	assert.Equal(t, models.ClockList{"09:00"}, rec.BlockedSlots)
}

func TestValidateChange_ExampleScenario(t *testing.T) {
	rec, err := ValidateChange(change("09:00", "11:00", 60), nil)
	require.NoError(t, err)

	slots := ComputeSlots(rec, nil)
	assert.Equal(t, []SlotState{SlotBookable, SlotBookable}, []SlotState{slots[0].State, slots[1].State})

	booked := appt(1, "10:00", "reserved")
	slots = ComputeSlots(rec, []models.Appointment{booked})
	assert.Equal(t, SlotReserved, slots[1].State)

	_, err = ValidateChange(change("09:00", "11:00", 60, "10:00"), []models.Appointment{booked})
	requireCode(t, err, CodeCannotBlockReservedSlot)

	booked.Status = "cancelled"
	rec, err = ValidateChange(change("09:00", "11:00", 60, "10:00"), []models.Appointment{booked})
	require.NoError(t, err)

	slots = ComputeSlots(rec, []models.Appointment{booked})
	require.Len(t, slots, 2)
	assert.Equal(t, SlotBookable, slots[0].State)
	assert.Equal(t, SlotBlocked, slots[1].State)
}
