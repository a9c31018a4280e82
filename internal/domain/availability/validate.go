package availability

import (
	"sort"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	MinSlotMinutes     = 5
	MaxSlotMinutes     = 240
	DefaultSlotMinutes = 60

	// MaxRangeDays bounds the from/to listings, both ends included.
	MaxRangeDays = 366
)

// Change is a full replacement of one day's configuration.
type Change struct {
	Date         string
	StartTime    string
	EndTime      string
	SlotMinutes  int
	BlockedSlots []string

	// Close, when true, blocks every grid slot. It goes through the same
	// checks as any other edit.
	Close bool
}

// ValidateChange checks a proposed configuration against the appointments
// already booked for the date and returns the normalized record to persist.
// It has no side effects.
//
// Checks run in order: parsing, window, closure, narrowing, blocks.
func ValidateChange(ch Change, existing []models.Appointment) (*models.Availability, error) {
	if !ValidDate(ch.Date) {
		return nil, ErrInvalidDate("date", ch.Date)
	}

	start, err := ParseClock(ch.StartTime)
	if err != nil {
		return nil, ErrMalformedTime("start_time", ch.StartTime)
	}
	end, err := ParseClock(ch.EndTime)
	if err != nil {
		return nil, ErrMalformedTime("end_time", ch.EndTime)
	}

	if ch.SlotMinutes < MinSlotMinutes || ch.SlotMinutes > MaxSlotMinutes {
		return nil, ErrInvalidSlotMinutes(ch.SlotMinutes)
	}

	if end <= start {
		return nil, ErrInvalidWindow(ch.StartTime, ch.EndTime)
	}

	requested := make([]int, 0, len(ch.BlockedSlots))
	for _, b := range ch.BlockedSlots {
		m, err := ParseClock(b)
		if err != nil {
			return nil, ErrMalformedTime("blocked_slots", b)
		}
		requested = append(requested, m)
	}

	grid := Grid(start, end, ch.SlotMinutes)
	if ch.Close {
		requested = append(requested, grid...)
	}

	live := appointment.Live(existing)

	proposed := &models.Availability{
		Date:        ch.Date,
		StartTime:   FormatClock(start),
		EndTime:     FormatClock(end),
		SlotMinutes: ch.SlotMinutes,
	}

	onGrid := make(map[int]bool, len(grid))
	for _, m := range grid {
		onGrid[m] = true
	}

	// A day stays open while at least one grid slot is not manually blocked.
	if len(live) > 0 && !leavesSlotOpen(grid, requested) {
		return nil, ErrCannotCloseDay(ch.Date, len(live))
	}

	reserved := make(map[int]bool, len(live))
	for _, ap := range sortedByTime(live) {
		m, err := ParseClock(ap.Time)
		if err != nil || !onGrid[m] {
			return nil, ErrAppointmentOutsideWindow(ap.Time, proposed.StartTime, proposed.EndTime)
		}
		reserved[m] = true
	}

	for _, m := range requested {
		if reserved[m] {
			return nil, ErrCannotBlockReservedSlot(FormatClock(m))
		}
	}

	blocked := normalizeBlocks(requested, onGrid, reserved)

	proposed.BlockedSlots = clocks(blocked)
	proposed.IsActive = len(blocked) < len(grid)

	return proposed, nil
}

func leavesSlotOpen(grid, blocked []int) bool {
	set := make(map[int]bool, len(blocked))
	for _, m := range blocked {
		set[m] = true
	}
	for _, m := range grid {
		if !set[m] {
			return true
		}
	}
	return false
}

// normalizeBlocks deduplicates, drops off-grid and reserved minutes, sorts.
func normalizeBlocks(requested []int, onGrid, reserved map[int]bool) []int {
	seen := make(map[int]bool, len(requested))
	out := make([]int, 0, len(requested))
	for _, m := range requested {
		if seen[m] || !onGrid[m] || reserved[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}

func clocks(minutes []int) models.ClockList {
	out := make(models.ClockList, 0, len(minutes))
	for _, m := range minutes {
		out = append(out, FormatClock(m))
	}
	return out
}

func sortedByTime(appts []models.Appointment) []models.Appointment {
	out := append([]models.Appointment(nil), appts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
