package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure categories every stage of the
// request pipeline reports. The HTTP layer switches over it exhaustively.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindUnauthenticated
	KindForbidden
	KindValidation
	KindNotFound
	KindConflict
	KindTooManyRequests
	KindUpstream
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindTooManyRequests:
		return "too_many_requests"
	case KindUpstream:
		return "upstream"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// FieldViolation is a single structural problem with a request payload.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// AppError is the only error type the pipeline stages raise.
type AppError struct {
	Kind    ErrorKind
	Message string
	Details []FieldViolation
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// IsOperational reports whether the failure is an expected application
// state (bad input, missing entity, auth failure, upstream outage) rather
// than an internal fault.
func (e *AppError) IsOperational() bool {
	return e.Kind != KindUnknown && e.Kind != KindPersistence
}

func Unauthenticated(msg string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: msg}
}

func Forbidden(msg string) *AppError {
	return &AppError{Kind: KindForbidden, Message: msg}
}

func Invalid(msg string, details ...FieldViolation) *AppError {
	return &AppError{Kind: KindValidation, Message: msg, Details: details}
}

func NotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

func TooManyRequests(msg string) *AppError {
	return &AppError{Kind: KindTooManyRequests, Message: msg}
}

func Upstream(msg string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: msg, Err: err}
}

func Persistence(msg string, err error) *AppError {
	return &AppError{Kind: KindPersistence, Message: msg, Err: err}
}

// AsAppError returns the AppError in err's chain, or wraps err as an
// Unknown failure when there is none.
func AsAppError(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return &AppError{Kind: KindUnknown, Message: "internal server error", Err: err}
}

// Sentinels returned by repositories and services. Compare with errors.Is.
var (
	ErrUserNotFound        = NotFound("user not found")
	ErrCategoryNotFound    = NotFound("category not found")
	ErrSubCategoryNotFound = NotFound("sub-category not found under the given category")
	ErrPhoneTaken          = Conflict("phone number already registered")
	ErrInvalidCredentials  = Unauthenticated("invalid credentials")
	ErrForbidden           = Forbidden("access forbidden")
	ErrAdminRequired       = Forbidden("admin privileges required")
)
