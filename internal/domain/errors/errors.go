package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")

	ErrIneligiblePayee       = errors.New("ineligible payee")
	ErrAlreadyPaid           = errors.New("already paid")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidConfiguration  = errors.New("invalid schedule configuration")
	ErrInvalidWalletAddress  = errors.New("invalid wallet address")
	ErrPersistence           = errors.New("persistence failure")
	ErrChainSubmission       = errors.New("chain submission failed")
	ErrReconciliation        = errors.New("reconciliation failed")
	ErrInvalidTransition     = errors.New("invalid payment status transition")
	ErrPaymentNotInFlight    = errors.New("payment is not awaiting approval")
	ErrNotificationDispatch  = errors.New("notification dispatch failed")
	ErrPayrollDataSubmission = errors.New("payroll data submission failed")
	ErrSweepInProgress       = errors.New("payroll sweep already running")
)

// Error codes returned to API clients
const (
	CodeInvalidInput         = "INVALID_INPUT"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeIneligiblePayee      = "INELIGIBLE_PAYEE"
	CodeInvalidAmount        = "INVALID_AMOUNT"
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodePersistence          = "PERSISTENCE_ERROR"
	CodeChainSubmission      = "CHAIN_SUBMISSION_ERROR"
	CodeReconciliation       = "RECONCILIATION_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrConflict)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// Payroll taxonomy

// IneligiblePayee rejects a payee before any record is created. reason is user-facing.
func IneligiblePayee(reason string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeIneligiblePayee, reason, errors.Join(ErrIneligiblePayee, errors.New(reason)))
}

// AlreadyPaid is the ineligibility raised for a contractor already marked Paid.
func AlreadyPaid() *AppError {
	return NewAppError(http.StatusConflict, CodeIneligiblePayee, "Already paid", errors.Join(ErrIneligiblePayee, ErrAlreadyPaid))
}

func InvalidAmount(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidAmount, message, errors.Join(ErrInvalidAmount, errors.New(message)))
}

func InvalidConfiguration(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidConfiguration, message, errors.Join(ErrInvalidConfiguration, errors.New(message)))
}

func Persistence(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodePersistence, "failed to persist payment record", errors.Join(ErrPersistence, err))
}

func ChainSubmission(err error) *AppError {
	return NewAppError(http.StatusBadGateway, CodeChainSubmission, "failed to submit transaction", errors.Join(ErrChainSubmission, err))
}

// Reconciliation marks a payment whose on-chain outcome is known but whose record could not be finalized.
func Reconciliation(paymentID string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeReconciliation, "payment "+paymentID+" requires manual review", errors.Join(ErrReconciliation, err))
}

// FromError converts any error into an AppError, classifying bare sentinels.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, err.Error(), err)
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyExists),
		errors.Is(err, ErrPaymentNotInFlight), errors.Is(err, ErrSweepInProgress):
		return NewAppError(http.StatusConflict, CodeConflict, err.Error(), err)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidWalletAddress):
		return NewAppError(http.StatusBadRequest, CodeInvalidInput, err.Error(), err)
	}
	return InternalError(err)
}
