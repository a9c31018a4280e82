package availability

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type SlotState string

const (
	SlotBookable SlotState = "bookable"
	SlotReserved SlotState = "reserved"
	SlotBlocked  SlotState = "blocked"
)

type SlotView struct {
	Time     string    `json:"time"`
	State    SlotState `json:"state"`
	Reserved bool      `json:"reserved"`
	Blocked  bool      `json:"blocked"`
	Bookable bool      `json:"bookable"`

	// Set on reserved slots only.
	AppointmentID *uint `json:"appointment_id,omitempty"`
}

// Minute returns the slot start in minutes after midnight, -1 if Time is
// malformed.
func (s SlotView) Minute() int {
	m, err := ParseClock(s.Time)
	if err != nil {
		return -1
	}
	return m
}

type Summary struct {
	Total    int `json:"total"`
	Bookable int `json:"bookable"`
	Reserved int `json:"reserved"`
	Blocked  int `json:"blocked"`
}

// Grid returns every slot start in [start, end) whose slot fits completely
// inside the window. A trailing partial slot is never produced.
func Grid(start, end, step int) []int {
	if step <= 0 || end <= start {
		return nil
	}

	out := make([]int, 0, (end-start)/step)
	for t := start; t+step <= end; t += step {
		out = append(out, t)
	}
	return out
}

// ComputeSlots classifies every grid slot of day against the appointments of
// that date. Cancelled appointments are ignored; a reservation always wins
// over a manual block. Output is in ascending time order.
func ComputeSlots(day *models.Availability, appts []models.Appointment) []SlotView {
	out := []SlotView{}
	if day == nil || !day.IsActive {
		return out
	}

	start, err := ParseClock(day.StartTime)
	if err != nil {
		return out
	}
	end, err := ParseClock(day.EndTime)
	if err != nil {
		return out
	}

	reserved := reservedByMinute(appts)
	blocked := minuteSet(day.BlockedSlots)

	for _, m := range Grid(start, end, day.SlotMinutes) {
		sv := SlotView{Time: FormatClock(m)}

		if id, ok := reserved[m]; ok {
			sv.Reserved = true
			sv.AppointmentID = &id
			sv.State = SlotReserved
		} else if blocked[m] {
			sv.Blocked = true
			sv.State = SlotBlocked
		} else {
			sv.Bookable = true
			sv.State = SlotBookable
		}

		out = append(out, sv)
	}

	return out
}

// ForClient keeps the slots a client may book right now. Past slots are only
// trimmed on the current date; days before today offer nothing.
func ForClient(date string, slots []SlotView, now time.Time) []SlotView {
	out := []SlotView{}
	if IsBeforeToday(date, now) {
		return out
	}

	today := date == now.Format(DateLayout)
	for _, s := range slots {
		if !s.Bookable {
			continue
		}
		if today && IsPast(date, s.Minute(), now) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Find returns the slot starting at clock, if the grid has one.
func Find(slots []SlotView, clock string) (SlotView, bool) {
	m, err := ParseClock(clock)
	if err != nil {
		return SlotView{}, false
	}
	for _, s := range slots {
		if s.Minute() == m {
			return s, true
		}
	}
	return SlotView{}, false
}

func Summarize(slots []SlotView) Summary {
	sum := Summary{Total: len(slots)}
	for _, s := range slots {
		switch s.State {
		case SlotBookable:
			sum.Bookable++
		case SlotReserved:
			sum.Reserved++
		case SlotBlocked:
			sum.Blocked++
		}
	}
	return sum
}

// HasCapacity is the derived active flag: at least one slot is either free
// or already serving an appointment.
func HasCapacity(slots []SlotView) bool {
	for _, s := range slots {
		if s.Bookable || s.Reserved {
			return true
		}
	}
	return false
}

func reservedByMinute(appts []models.Appointment) map[int]uint {
	out := make(map[int]uint, len(appts))
	for _, ap := range appts {
		if !appointment.Occupies(appointment.Status(ap.Status)) {
			continue
		}
		m, err := ParseClock(ap.Time)
		if err != nil {
			continue
		}
		out[m] = ap.ID
	}
	return out
}

func minuteSet(clocks []string) map[int]bool {
	out := make(map[int]bool, len(clocks))
	for _, c := range clocks {
		if m, err := ParseClock(c); err == nil {
			out[m] = true
		}
	}
	return out
}
