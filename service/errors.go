package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the settlement path. Callers match them with
// errors.Is to distinguish rejected bets from infrastructure failures.
var (
	// ErrInsufficientBalance is returned when an actor's balance cannot
	// cover the wager being debited.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrFreerollUnavailable is returned when a freeroll bet is requested
	// but the agent's one-time freeroll has already been consumed.
	ErrFreerollUnavailable = errors.New("freeroll already used")
)

// ValidationError indicates the bet request itself was malformed, before any
// state was touched. The Field names the offending parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a request field
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a storage failure during settlement. When Inconsistent
// is true the settlement transaction could not be rolled back cleanly and the
// stored state may not reflect the outcome.
type PersistenceError struct {
	Op           string
	Inconsistent bool
	Err          error
}

func (e *PersistenceError) Error() string {
	if e.Inconsistent {
		return fmt.Sprintf("persistence failure during %s (state may be inconsistent): %v", e.Op, e.Err)
	}
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ExternalTransferError wraps a failure from the treasury when moving funds
// on-chain. Local balances are only mutated after the transfer succeeds, so
// this error means no local state changed.
type ExternalTransferError struct {
	Op  string
	Err error
}

func (e *ExternalTransferError) Error() string {
	return fmt.Sprintf("external transfer failed during %s: %v", e.Op, e.Err)
}

func (e *ExternalTransferError) Unwrap() error {
	return e.Err
}
