package models

import (
	"errors"
	"fmt"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusReceived  OrderStatus = "received"
	StatusReady     OrderStatus = "ready"
	StatusCollected OrderStatus = "collected"
)

// ErrNoTransition is returned when an order is already in the requested
// status. Callers treat it as a successful no-op.
var ErrNoTransition = errors.New("order already in requested status")

// InvalidTransitionError reports an attempt to move an order backward or to
// skip a step. It indicates a logic error in the caller, not a retryable
// condition.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order transition from %q to %q", e.From, e.To)
}

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusReady, StatusCollected:
		return true
	}
	return false
}

// Display returns the customer-facing label for the status.
func (s OrderStatus) Display() string {
	switch s {
	case StatusReceived:
		return "Order Received"
	case StatusReady:
		return "Ready"
	case StatusCollected:
		return "Collected"
	}
	return string(s)
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == StatusCollected
}

// Next returns the single legal successor status, if any.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusReceived:
		return StatusReady, true
	case StatusReady:
		return StatusCollected, true
	}
	return "", false
}

// ValidateTransition checks that moving an order from one status to another
// is legal. Re-applying the current status yields ErrNoTransition so that
// concurrent staff actions stay idempotent; everything except the single
// forward step yields an InvalidTransitionError.
func ValidateTransition(from, to OrderStatus) error {
	if from == to {
		return ErrNoTransition
	}
	if next, ok := from.Next(); ok && next == to {
		return nil
	}
	return &InvalidTransitionError{From: from, To: to}
}
