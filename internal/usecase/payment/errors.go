package payment

const (
	CodeNotFound         = "payment_not_found"
	CodePaymentsDisabled = "payments_disabled"
	CodeInvalidState     = "invalid_state"
)
