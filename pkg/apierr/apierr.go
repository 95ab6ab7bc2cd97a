package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindTooManyRequests
	KindMethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindTooManyRequests:
		return "too_many_requests"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "internal"
	}
}

// InternalMessage is what clients see for any unclassified failure.
const InternalMessage = "Internal server error"

// Error is the single error type crossing the API boundary. The kind alone
// decides the HTTP status; the message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	// Err is the underlying cause, kept for logging only.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewTooManyRequestsError() *Error {
	return &Error{Kind: KindTooManyRequests, Message: "Too many requests"}
}

func NewMethodNotAllowedError() *Error {
	return &Error{Kind: KindMethodNotAllowed, Message: "Method not allowed"}
}

func NewInternalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: InternalMessage, Err: err}
}

// From classifies any error. Errors not carrying an *Error in their chain
// become internal errors.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewInternalError(err)
}

func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return kind == KindInternal && err != nil
	}
	return apiErr.Kind == kind
}
