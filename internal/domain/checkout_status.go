package domain

type CheckoutStatus string

const (
	CheckoutStatusIdle       CheckoutStatus = "IDLE"
	CheckoutStatusSubmitting CheckoutStatus = "SUBMITTING"
	CheckoutStatusConfirmed  CheckoutStatus = "CONFIRMED"
	CheckoutStatusFailed     CheckoutStatus = "FAILED"
)

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}

var allowedTransitions = map[CheckoutStatus][]CheckoutStatus{
	CheckoutStatusIdle:       {CheckoutStatusSubmitting},
	CheckoutStatusSubmitting: {CheckoutStatusConfirmed, CheckoutStatusFailed},
	CheckoutStatusConfirmed:  {CheckoutStatusSubmitting},
	CheckoutStatusFailed:     {CheckoutStatusSubmitting},
}

// CanTransitionTo reports whether a checkout may move from one status to another.
func CanTransitionTo(from, to CheckoutStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
