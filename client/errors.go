package client

import (
	"errors"

	apierr "github.com/MatheusCastilhos/trabalho-final-ihc-2025/client/internal/errors"
)

// ErrUnauthenticated is returned by guarded operations when no token is present.
// No request is sent in that case.
var ErrUnauthenticated = apierr.ErrUnauthenticated

// IsUnauthenticated reports whether err is a missing-token failure.
func IsUnauthenticated(err error) bool { return errors.Is(err, ErrUnauthenticated) }

// Re-export the error taxonomy so callers compare against a single symbol.
type (
	APIError = apierr.APIError
	Kind     = apierr.Kind
)

const (
	KindHTTP            = apierr.KindHTTP
	KindTransport       = apierr.KindTransport
	KindUnauthenticated = apierr.KindUnauthenticated
	KindValidation      = apierr.KindValidation
	KindUnsupported     = apierr.KindUnsupported
)

// IsKind reports whether err is an *APIError of kind k.
func IsKind(err error, k Kind) bool { return apierr.IsKind(err, k) }

// NewValidationError builds a local precondition failure carrying msg verbatim.
func NewValidationError(op, msg string) error { return apierr.NewValidation(op, msg) }

// Message returns the single user-facing string for err, or fallback.
func Message(err error, fallback string) string { return apierr.Message(err, fallback) }

// ExtractMessage applies the backend error-body normalization to body.
func ExtractMessage(body []byte, fallback string) string {
	return apierr.ExtractMessage(body, fallback)
}
