package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrNoWallet          ErrorType = "NO_WALLET"
	ErrAssetNotFound     ErrorType = "ASSET_NOT_FOUND"
	ErrInvalidNotional   ErrorType = "INVALID_NOTIONAL"
	ErrDelegationFailed  ErrorType = "DELEGATION_FAILED"
	ErrSubmissionReject  ErrorType = "SUBMISSION_REJECTED"
	ErrAlreadyInProgress ErrorType = "ALREADY_IN_PROGRESS"
	ErrTransport         ErrorType = "TRANSPORT_ERROR"
	ErrInvalidRequest    ErrorType = "INVALID_REQUEST"
	ErrInternal          ErrorType = "INTERNAL_ERROR"
)

// AppError is the standard error struct for the application
type AppError struct {
	Type       ErrorType `json:"code"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion,omitempty"`
	HTTPStatus int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errType ErrorType, msg string, cause error) *AppError {
	return &AppError{
		Type:       errType,
		Message:    msg,
		Cause:      cause,
		HTTPStatus: mapTypeToStatus(errType),
		Suggestion: mapTypeToSuggestion(errType),
	}
}

func NewNoWallet(msg string) *AppError {
	return New(ErrNoWallet, msg, nil)
}

func NewAssetNotFound(msg string) *AppError {
	return New(ErrAssetNotFound, msg, nil)
}

func NewInvalidNotional(msg string) *AppError {
	return New(ErrInvalidNotional, msg, nil)
}

func NewInvalidRequest(msg string) *AppError {
	return New(ErrInvalidRequest, msg, nil)
}

// IsAppError unwraps err looking for an AppError.
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return New(ErrInternal, err.Error(), err)
}

func mapTypeToStatus(t ErrorType) int {
	switch t {
	case ErrInvalidNotional, ErrInvalidRequest:
		return http.StatusBadRequest
	case ErrNoWallet:
		return http.StatusUnauthorized
	case ErrAssetNotFound:
		return http.StatusNotFound
	case ErrAlreadyInProgress:
		return http.StatusConflict
	case ErrSubmissionReject:
		return http.StatusUnprocessableEntity
	case ErrDelegationFailed, ErrTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func mapTypeToSuggestion(t ErrorType) string {
	switch t {
	case ErrNoWallet:
		return "Connect a custodial signing wallet before submitting."
	case ErrAssetNotFound:
		return "Check the asset symbol against the exchange universe."
	case ErrInvalidNotional:
		return "Notional amount must be a positive quote-currency value."
	case ErrAlreadyInProgress:
		return "Wait for the in-flight submission to finish, then retry."
	case ErrDelegationFailed, ErrTransport:
		return "Retry the request."
	default:
		return ""
	}
}
