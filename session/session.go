package session

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultDisplayName is used when a full name yields no usable word.
const DefaultDisplayName = "Usuário"

// Identity is the non-secret part of a session.
type Identity struct {
	Username    string
	DisplayName string
}

// Shown is the name greeting the user: display name, else username, else DefaultDisplayName.
func (id Identity) Shown() string {
	if strings.TrimSpace(id.DisplayName) != "" {
		return id.DisplayName
	}
	if strings.TrimSpace(id.Username) != "" {
		return id.Username
	}
	return DefaultDisplayName
}

// Session is the application-level session context. It is the only writer of
// the session keys and satisfies client.TokenSource.
type Session struct {
	store Store
}

// New wraps store.
func New(store Store) *Session {
	return &Session{store: store}
}

// Token returns the stored token. Store failures read as "no session".
func (s *Session) Token(ctx context.Context) (string, bool) {
	v, ok, err := s.store.Get(ctx, KeyToken)
	if err != nil {
		log.Warn().Err(err).Msg("session token read failed")
		return "", false
	}
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// Identity returns the stored username and display name.
func (s *Session) Identity(ctx context.Context) Identity {
	var id Identity
	if v, ok, err := s.store.Get(ctx, KeyUsername); err == nil && ok {
		id.Username = v
	}
	if v, ok, err := s.store.Get(ctx, KeyDisplayName); err == nil && ok {
		id.DisplayName = v
	}
	return id
}

// SetSession stores token and identity. An empty token is rejected.
func (s *Session) SetSession(ctx context.Context, token string, id Identity) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := s.store.Set(ctx, KeyToken, token); err != nil {
		return err
	}
	if err := s.store.Set(ctx, KeyUsername, id.Username); err != nil {
		return err
	}
	return s.store.Set(ctx, KeyDisplayName, id.DisplayName)
}

// Login stores a fresh token. A display name kept from registration survives;
// otherwise the username is shown.
func (s *Session) Login(ctx context.Context, token, username string) error {
	display := s.Identity(ctx).DisplayName
	if display == "" {
		display = username
	}
	return s.SetSession(ctx, token, Identity{Username: username, DisplayName: display})
}

// Register remembers the display name derived from fullName. Sign-up issues no
// session; the user logs in afterwards and the name is kept.
func (s *Session) Register(ctx context.Context, fullName string) error {
	return s.store.Set(ctx, KeyDisplayName, DisplayName(fullName))
}

// Clear removes every session key.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, KeyToken, KeyUsername, KeyDisplayName)
}

// Logout is Clear.
func (s *Session) Logout(ctx context.Context) error { return s.Clear(ctx) }

// DisplayName returns the first word of fullName, or DefaultDisplayName.
func DisplayName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return DefaultDisplayName
	}
	return fields[0]
}
