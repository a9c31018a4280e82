package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	minutesPerDay = 24 * 60
)

// ParseClock converts "HH:MM" into minutes after midnight. Both fields take
// exactly two digits; surrounding whitespace is rejected.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("clock %q: want HH:MM", s)
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 || !isDigits(hh) {
		return 0, fmt.Errorf("clock %q: bad hour", s)
	}

	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || !isDigits(mm) {
		return 0, fmt.Errorf("clock %q: bad minute", s)
	}

	return h*60 + m, nil
}

// FormatClock is the inverse of ParseClock, always zero padded.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeClock re-renders a valid clock string in canonical form.
func NormalizeClock(s string) (string, bool) {
	m, err := ParseClock(s)
	if err != nil {
		return "", false
	}
	return FormatClock(m), true
}

// ParseDate parses YYYY-MM-DD as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

// ValidDate reports whether s is a real YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// At combines a date and a minute of day in loc.
func At(date string, minutes int, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc), nil
}

// IsPast reports whether date+minutes is strictly before now, evaluated in
// now's location. Unparsable dates count as past so they are never offered.
func IsPast(date string, minutes int, now time.Time) bool {
	t, err := At(date, minutes, now.Location())
	if err != nil {
		return true
	}
	return t.Before(now)
}

// IsBeforeToday compares calendar dates only.
func IsBeforeToday(date string, now time.Time) bool {
	return date < now.Format(DateLayout)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
