package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusReserved       Status = "reserved"
	StatusInProcess      Status = "in_process"
	StatusPendingPayment Status = "pending_payment"
	StatusPaid           Status = "paid"
	StatusCancelled      Status = "cancelled"
)

const (
	CodeInvalidStatus    = "invalid_status"
	CodeInvalidState     = "invalid_state"
	CodeNotFound         = "appointment_not_found"
	CodeSlotUnavailable  = "slot_unavailable"
	CodeSlotAlreadyTaken = "slot_already_taken"
	CodePastDate         = "past_date"
	CodePersonRequired   = "person_required"
	CodePersonNotFound   = "person_not_found"
	CodeForbidden        = "forbidden"
)

var allStatuses = []Status{
	StatusReserved,
	StatusInProcess,
	StatusPendingPayment,
	StatusPaid,
	StatusCancelled,
}

// ===============================
// Validations
// ===============================

func ParseStatus(s string) (Status, error) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", httperr.ErrBusinessWith(CodeInvalidStatus, map[string]any{"status": s})
}

// Occupies define se o status segura o horário. Só cancelado libera.
func Occupies(s Status) bool {
	return s != StatusCancelled
}

// CanTransition: cancelado é absorvente, o resto pode ir para qualquer status.
func CanTransition(from, to Status) error {
	if from == StatusCancelled && to != StatusCancelled {
		return httperr.ErrBusinessWith(CodeInvalidState, map[string]any{
			"from": string(from),
			"to":   string(to),
		})
	}
	return nil
}

// InitialStatus valida o status configurado para novas reservas.
func InitialStatus(configured string) (Status, error) {
	if configured == "" {
		return StatusReserved, nil
	}
	st, err := ParseStatus(configured)
	if err != nil {
		return "", err
	}
	if !Occupies(st) {
		return "", httperr.ErrBusinessWith(CodeInvalidStatus, map[string]any{"status": configured})
	}
	return st, nil
}
