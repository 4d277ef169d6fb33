package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Transfer and ledger error kinds. Each one is a client-input or state error
// and is surfaced to the caller as-is.
var (
	ErrNotOwner            = errors.New("sender account does not belong to the requesting user")
	ErrSameAccount         = errors.New("sender and receiver accounts must be different")
	ErrAccountNotFound     = fmt.Errorf("account %w", ErrNotFound)
	ErrInvalidAmount       = fmt.Errorf("%w: amount must be positive with at most 4 fractional digits", ErrValidation)
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRateNotFound        = fmt.Errorf("exchange rate %w", ErrNotFound)
	ErrCurrencyNotFound    = fmt.Errorf("currency %w", ErrNotFound)
	ErrTransferNotFound    = fmt.Errorf("transfer %w", ErrNotFound)
	ErrDuplicateAccount    = fmt.Errorf("%w: user already holds an account in this currency", ErrDuplicate)
)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
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

// NewValidationError creates a 400 AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// HTTPStatus maps an error to the status code the HTTP layer should return.
// Specific kinds are checked before the generic ones they wrap.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, ErrSameAccount),
		errors.Is(err, ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrRateNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
