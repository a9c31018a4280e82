package timezone

import (
	"sync"
	"time"
)

const (
	DefaultTimezone = "America/Sao_Paulo"
	DateLayout      = "2006-01-02"
)

var (
	mu     sync.RWMutex
	clinic = DefaultTimezone
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// SetClinic fixes the timezone every date and time of day is interpreted in.
// Invalid names keep the current value.
func SetClinic(tz string) bool {
	if !IsValid(tz) {
		return false
	}
	mu.Lock()
	clinic = tz
	mu.Unlock()
	return true
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Clinic() *time.Location {
	mu.RLock()
	tz := clinic
	mu.RUnlock()
	return Location(tz)
}

func Now() time.Time {
	return time.Now().In(Clinic())
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Today returns the clinic's current calendar date as YYYY-MM-DD.
func Today() string {
	return Now().Format(DateLayout)
}
