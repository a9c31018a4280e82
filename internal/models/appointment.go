package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Date (YYYY-MM-DD) + Time (HH:MM) identify the booked slot. A partial
	// unique index keeps at most one non-cancelled row per pair.
	Date string `gorm:"size:10;not null;index:idx_appointments_date" json:"date"`
	Time string `gorm:"size:5;not null" json:"time"`

	ClientID uint `gorm:"not null;index" json:"client_id"`

	Status string `gorm:"size:20;not null" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	PaidAt      *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
