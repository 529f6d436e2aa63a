package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicateInstrument indicates that a cheque with the same tenant, number and
// bank already exists in a non-terminal state.
var ErrDuplicateInstrument = errors.New("duplicate cheque instrument")

// ErrIllegalTransition indicates that the requested status change is not reachable
// from the cheque's current status. Use NewIllegalTransitionError to carry the
// from/to pair.
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrInvalidBankAccount indicates that the referenced deposit account does not
// resolve or is not ACTIVE.
var ErrInvalidBankAccount = errors.New("invalid or inactive bank account")

// ErrConcurrentModification indicates an optimistic-concurrency version mismatch.
// The caller should re-read current state and retry; the engine never retries writes.
var ErrConcurrentModification = errors.New("cheque was modified concurrently")

// ErrBrokenChainReference indicates an integrity violation found while walking a
// replacement chain. Treated as fatal, it means a prior write was not transactional.
var ErrBrokenChainReference = errors.New("broken replacement chain reference")

// ErrInvalidDateRange indicates a reporting window whose end precedes its start.
var ErrInvalidDateRange = errors.New("date range end precedes start")

// ErrDuplicateRequest indicates a transition request id that was already applied.
// Services use it to answer retries idempotently.
var ErrDuplicateRequest = errors.New("transition request already applied")

// AppError wraps lower-level failures with an HTTP-ish code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError that matches ErrNotFound under errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// IllegalTransitionError reports the current and attempted statuses of a rejected
// transition. It unwraps to ErrIllegalTransition.
type IllegalTransitionError struct {
	From        string
	AttemptedTo string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.AttemptedTo)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given pair.
func NewIllegalTransitionError(from, attemptedTo string) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, AttemptedTo: attemptedTo}
}

// ValidationFieldError names the offending field of a rejected request. It unwraps
// to ErrValidation.
type ValidationFieldError struct {
	Field  string
	Reason string
}

func (e *ValidationFieldError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func (e *ValidationFieldError) Unwrap() error {
	return ErrValidation
}

// NewValidationFieldError creates a ValidationFieldError for the given field.
func NewValidationFieldError(field, reason string) *ValidationFieldError {
	return &ValidationFieldError{Field: field, Reason: reason}
}
