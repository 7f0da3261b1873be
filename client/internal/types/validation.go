package types

import (
	"context"
	"fmt"
	"net/http"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource yields the bearer token of the current session. It is
// consulted on every guarded call and never cached by the SDK.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// ------------------------------
// Validation
// ------------------------------

// ValidReminderType reports whether t is one of ReminderTypes.
func ValidReminderType(t ReminderType) bool {
	for _, known := range ReminderTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ValidateID checks that a resource id was supplied.
func ValidateID(id int64, name string) error {
	if id <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}
