package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Availability is the admin-configured working window for one calendar date.
// IsActive is a cached, derived value: it is recomputed on every write.
type Availability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date        string `gorm:"size:10;uniqueIndex;not null" json:"date"`
	StartTime   string `gorm:"size:5;not null" json:"start_time"`
	EndTime     string `gorm:"size:5;not null" json:"end_time"`
	SlotMinutes int    `gorm:"not null" json:"slot_minutes"`
	IsActive    bool   `gorm:"not null" json:"is_active"`

	BlockedSlots ClockList `gorm:"type:text" json:"blocked_slots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClockList stores "HH:MM" values as a comma separated column.
type ClockList []string

func (l ClockList) Value() (driver.Value, error) {
	return strings.Join(l, ","), nil
}

func (l *ClockList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*l = ClockList{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("clock list: unsupported type %T", src)
	}

	if raw == "" {
		*l = ClockList{}
		return nil
	}
	*l = strings.Split(raw, ",")
	return nil
}
