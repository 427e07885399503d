package confirmation

import (
	"errors"
	"fmt"
)

// ValidationError is returned for input the shopper has to correct.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// DeliveryFailure means the confirmation could not be handed off. The cart is
// kept, so the shopper may try again.
type DeliveryFailure struct {
	OrderID string
	Err     error
}

func (e *DeliveryFailure) Error() string {
	return fmt.Sprintf("failed to deliver confirmation for order %s: %v", e.OrderID, e.Err)
}

func (e *DeliveryFailure) Unwrap() error {
	return e.Err
}

func (e *DeliveryFailure) Retryable() bool {
	return true
}

var ErrSimulatedRefusal = errors.New("simulated delivery refusal")
