package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentView struct {
	ID       uint   `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Status   string `json:"status"`
	Notes    string `json:"notes,omitempty"`
	ClientID uint   `json:"client_id"`

	// Nil when the client record no longer exists.
	Client *appointment.Person `json:"client"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewAppointmentView(ap models.Appointment, people map[uint]appointment.Person) AppointmentView {
	v := AppointmentView{
		ID:          ap.ID,
		Date:        ap.Date,
		Time:        ap.Time,
		Status:      ap.Status,
		Notes:       ap.Notes,
		ClientID:    ap.ClientID,
		CancelledAt: ap.CancelledAt,
		PaidAt:      ap.PaidAt,
		CreatedAt:   ap.CreatedAt,
	}
	if p, ok := people[ap.ClientID]; ok {
		v.Client = &p
	}
	return v
}
