package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet Ledger (WAL) ----

func ErrEmptyWalletName() *AppError {
	return New("WAL_001", "Wallet name must not be empty", http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("WAL_002", "Funding amount must be a positive number", http.StatusBadRequest)
}

func ErrIncompleteCardDetails() *AppError {
	return New("WAL_003", "Card number, holder name, expiry and CVV are all required", http.StatusBadRequest)
}

func ErrLastWallet() *AppError {
	return New("WAL_004", "At least one wallet must remain", http.StatusUnprocessableEntity)
}

func ErrWalletNotFound() *AppError {
	return New("WAL_005", "Wallet not found", http.StatusNotFound)
}

func ErrCardNotFound() *AppError {
	return New("WAL_006", "Saved card not found", http.StatusNotFound)
}

// ---- System & Infrastructure (SYS) ----

func ErrStorageFailure(err error) *AppError {
	return Wrap("SYS_001", "Snapshot storage failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_002 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_002", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request-level validation error.
func Validation(message string) *AppError {
	return New("WAL_000", message, http.StatusBadRequest)
}
