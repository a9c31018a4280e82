package availability

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

const (
	CodeMalformedTime            = "malformed_time"
	CodeInvalidDate              = "invalid_date"
	CodeInvalidWindow            = "invalid_window"
	CodeInvalidSlotMinutes       = "invalid_slot_minutes"
	CodeCannotCloseDay           = "cannot_close_day_with_appointments"
	CodeAppointmentOutsideWindow = "appointment_outside_new_window"
	CodeCannotBlockReservedSlot  = "cannot_block_reserved_slot"
)

func ErrMalformedTime(field, value string) error {
	return httperr.ErrBusinessWith(CodeMalformedTime, map[string]any{
		"field": field,
		"value": value,
	})
}

func ErrInvalidDate(field, value string) error {
	return httperr.ErrBusinessWith(CodeInvalidDate, map[string]any{
		"field": field,
		"value": value,
	})
}

// ErrRangeTooLong rejects a from/to range spanning more than MaxRangeDays.
func ErrRangeTooLong(from, to string) error {
	return httperr.ErrBusinessWith(CodeInvalidDate, map[string]any{
		"from":     from,
		"to":       to,
		"max_days": MaxRangeDays,
	})
}

func ErrInvalidWindow(start, end string) error {
	return httperr.ErrBusinessWith(CodeInvalidWindow, map[string]any{
		"start_time": start,
		"end_time":   end,
	})
}

func ErrInvalidSlotMinutes(got int) error {
	return httperr.ErrBusinessWith(CodeInvalidSlotMinutes, map[string]any{
		"slot_minutes": got,
		"min":          MinSlotMinutes,
		"max":          MaxSlotMinutes,
	})
}

func ErrCannotCloseDay(date string, appointments int) error {
	return httperr.ErrBusinessWith(CodeCannotCloseDay, map[string]any{
		"date":         date,
		"appointments": appointments,
	})
}

func ErrAppointmentOutsideWindow(time, start, end string) error {
	return httperr.ErrBusinessWith(CodeAppointmentOutsideWindow, map[string]any{
		"time":       time,
		"start_time": start,
		"end_time":   end,
	})
}

func ErrCannotBlockReservedSlot(time string) error {
	return httperr.ErrBusinessWith(CodeCannotBlockReservedSlot, map[string]any{
		"time": time,
	})
}

const CodeNotFound = "availability_not_found"

func ErrNotFound(date string) error {
	return httperr.ErrBusinessWith(CodeNotFound, map[string]any{"date": date})
}
