// Package errors provides the error taxonomy for the client SDK.
// Every failure surfaced by an adapter carries exactly one user-facing message.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind determines where a failure originated.
type Kind int

const (
	// KindHTTP is a non-2xx response from the backend.
	KindHTTP Kind = iota

	// KindTransport covers network failures and requests that could not be built.
	KindTransport

	// KindUnauthenticated is a guarded call attempted without a token.
	// No request is issued.
	KindUnauthenticated

	// KindValidation is a local precondition failure such as an empty form field.
	KindValidation

	// KindUnsupported is a missing platform capability (speech recognition).
	KindUnsupported
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindHTTP:
		return "HTTP"
	case KindTransport:
		return "Transport"
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindValidation:
		return "Validation"
	case KindUnsupported:
		return "Unsupported"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// UnauthenticatedMessage is shown when a guarded operation runs without a session.
const UnauthenticatedMessage = "Usuário não autenticado."

// ErrUnauthenticated is the sentinel matched by errors.Is for missing-token failures.
var ErrUnauthenticated = stderrors.New(UnauthenticatedMessage)

// APIError wraps a failure with its kind and the single message meant for the user.
type APIError struct {
	Kind       Kind
	Op         string // adapter operation, e.g. "create reminder"
	StatusCode int    // HTTP status code (0 for non-HTTP errors)
	Message    string // normalized, user-facing
	Body       []byte // raw response body for debugging
	Underlying error
}

// Error returns the user-facing message.
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *APIError) Unwrap() error {
	return e.Underlying
}

// Unauthenticated builds the local precondition failure for op.
func Unauthenticated(op string) *APIError {
	return &APIError{
		Kind:       KindUnauthenticated,
		Op:         op,
		Message:    UnauthenticatedMessage,
		Underlying: ErrUnauthenticated,
	}
}

// NewValidation builds a local precondition failure carrying msg verbatim.
func NewValidation(op, msg string) *APIError {
	return &APIError{Kind: KindValidation, Op: op, Message: msg}
}

// IsKind reports whether err is an *APIError of kind k.
func IsKind(err error, k Kind) bool {
	var ae *APIError
	if stderrors.As(err, &ae) {
		return ae.Kind == k
	}
	return false
}

// Message returns the user-facing message for err, or fallback when err carries none.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ae *APIError
	if stderrors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
