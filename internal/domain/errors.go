package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeMissingDetails     = "MISSING_DETAILS"
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodeFinalizationFailed = "FINALIZATION_FAILED"
)

func NewOrderNotFoundError(orderID string) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("order %s not found", orderID),
	}
}

func NewPaymentResponseNotFoundError(orderID string) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("no payment response stored for order %s", orderID),
	}
}

func NewTransactionNotFoundError(orderID string, state TransactionState) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("order %s has no transaction in state %s", orderID, state),
	}
}

func NewValidationError(fields []string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("invalid fields: %s", strings.Join(fields, ", ")),
	}
}

func NewMissingFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewMissingDetailsError() *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingDetails,
		Message: "details missing in state data",
	}
}

func NewInvalidTransitionError(from, to TransactionState) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

func NewUnknownTransitionError(name TransitionName) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("unknown transition %s", name),
	}
}

func NewFinalizationFailedError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeFinalizationFailed,
		Message: "error occurred finalizing payment",
		Err:     err,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
