package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP status
type Kind string

const (
	KindInvalidTransition          Kind = "invalid_transition"
	KindUnauthorized               Kind = "unauthorized"
	KindAlreadyTerminal            Kind = "already_terminal"
	KindTooSoon                    Kind = "too_soon"
	KindInvalidDuration            Kind = "invalid_duration"
	KindIneligibleApplicationState Kind = "ineligible_application_state"
	KindMissingLocationInfo        Kind = "missing_location_info"
	KindNotFound                   Kind = "not_found"
	KindConflict                   Kind = "conflict"
	KindValidation                 Kind = "validation"
	KindInternal                   Kind = "internal"
)

// Sentinels for errors.Is matching. Only the Kind is compared.
var (
	ErrInvalidTransition          = &AppError{Kind: KindInvalidTransition}
	ErrUnauthorized               = &AppError{Kind: KindUnauthorized}
	ErrAlreadyTerminal            = &AppError{Kind: KindAlreadyTerminal}
	ErrTooSoon                    = &AppError{Kind: KindTooSoon}
	ErrInvalidDuration            = &AppError{Kind: KindInvalidDuration}
	ErrIneligibleApplicationState = &AppError{Kind: KindIneligibleApplicationState}
	ErrMissingLocationInfo        = &AppError{Kind: KindMissingLocationInfo}
	ErrNotFound                   = &AppError{Kind: KindNotFound}
	ErrConflict                   = &AppError{Kind: KindConflict}
	ErrValidation                 = &AppError{Kind: KindValidation}
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same Kind
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForCode(code),
		Message: message,
		Err:     err,
	}
}

func newKind(kind Kind, code int, message string) *AppError {
	return &AppError{Code: code, Kind: kind, Message: message}
}

// KindOf returns the Kind of err, or KindInternal when err is not an AppError
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func kindForCode(code int) Kind {
	switch code {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	default:
		return KindInternal
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// Unauthenticated is used when no principal is present at all
func Unauthenticated(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Unauthorized(message string) *AppError {
	return newKind(KindUnauthorized, http.StatusForbidden, message)
}

func NotFound(message string) *AppError {
	return newKind(KindNotFound, http.StatusNotFound, message)
}

func Conflict(message string) *AppError {
	return newKind(KindConflict, http.StatusConflict, message)
}

func Validation(message string) *AppError {
	return newKind(KindValidation, http.StatusBadRequest, message)
}

func InvalidTransition(message string) *AppError {
	return newKind(KindInvalidTransition, http.StatusConflict, message)
}

func AlreadyTerminal(message string) *AppError {
	return newKind(KindAlreadyTerminal, http.StatusConflict, message)
}

func TooSoon(message string) *AppError {
	return newKind(KindTooSoon, http.StatusUnprocessableEntity, message)
}

func InvalidDuration(message string) *AppError {
	return newKind(KindInvalidDuration, http.StatusUnprocessableEntity, message)
}

func IneligibleApplicationState(message string) *AppError {
	return newKind(KindIneligibleApplicationState, http.StatusConflict, message)
}

func MissingLocationInfo(message string) *AppError {
	return newKind(KindMissingLocationInfo, http.StatusUnprocessableEntity, message)
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: "Internal Server Error",
		Err:     err,
	}
}
