package models

import "time"

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID      uint `gorm:"not null;index" json:"client_id"`
	AppointmentID uint `gorm:"not null;uniqueIndex" json:"appointment_id"`

	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"size:3;not null" json:"currency"`
	Method   string  `gorm:"size:20" json:"method"`
	Status   string  `gorm:"size:20;not null" json:"status"`

	ExternalReference string `gorm:"size:64;uniqueIndex" json:"external_reference"`
	PreferenceID      string `gorm:"size:128" json:"preference_id"`
	CheckoutURL       string `gorm:"size:512" json:"checkout_url"`

	PaidAt *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
