// Package client is the Go SDK for the Guardião da Memória REST backend.
//
// Every guarded operation reads the bearer token from the configured
// TokenSource at call time; a missing token fails with ErrUnauthenticated
// before any request is made.
package client

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client/internal/api"
)

// DefaultBaseURL is the backend origin of a local development server.
const DefaultBaseURL = "http://127.0.0.1:8000"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Single-item operations return a nil item with a nil error when the backend
// succeeds without a parseable body.

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for baseURL. tokens supplies the session token for
// guarded calls and may be nil when only public calls are made.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		tokens:  tokens,
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) conn() api.Conn {
	return api.Conn{
		HTTP:    c.http,
		BaseURL: c.baseURL,
		Tokens:  c.tokens,
		Observe: observeRequest,
	}
}

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// --------------------------------------------------------------------
// Auth operations - delegated to internal/api
// --------------------------------------------------------------------

// Register creates an account with profile fields.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return api.Register(ctx, c.conn(), req)
}

// Login exchanges credentials for a token. The caller stores the token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	return api.Login(ctx, c.conn(), req)
}

// Logout revokes the token server side. Backend rejections are logged, not returned.
func (c *Client) Logout(ctx context.Context) error {
	return api.Logout(ctx, c.conn())
}

// --------------------------------------------------------------------
// Reminder operations
// --------------------------------------------------------------------

// ListReminders returns all reminders of the session user.
func (c *Client) ListReminders(ctx context.Context) ([]Reminder, error) {
	return api.ListReminders(ctx, c.conn())
}

// GetReminder retrieves one reminder.
func (c *Client) GetReminder(ctx context.Context, id int64) (*Reminder, error) {
	return api.GetReminder(ctx, c.conn(), id)
}

// CreateReminder stores a new reminder.
func (c *Client) CreateReminder(ctx context.Context, in ReminderInput) (*Reminder, error) {
	return api.CreateReminder(ctx, c.conn(), in)
}

// UpdateReminder patches a reminder.
func (c *Client) UpdateReminder(ctx context.Context, id int64, in ReminderInput) (*Reminder, error) {
	return api.UpdateReminder(ctx, c.conn(), id, in)
}

// DeleteReminder deletes a reminder. Backend returns 204 No Content on success.
func (c *Client) DeleteReminder(ctx context.Context, id int64) error {
	return api.DeleteReminder(ctx, c.conn(), id)
}

// --------------------------------------------------------------------
// Diary operations
// --------------------------------------------------------------------

// ListDiaryEntries returns the diary of the session user.
func (c *Client) ListDiaryEntries(ctx context.Context) ([]DiaryEntry, error) {
	return api.ListDiaryEntries(ctx, c.conn())
}

// CreateDiaryEntry stores a note; attachments are uploaded as multipart.
func (c *Client) CreateDiaryEntry(ctx context.Context, in DiaryInput) (*DiaryEntry, error) {
	return api.CreateDiaryEntry(ctx, c.conn(), in)
}

// DeleteDiaryEntry deletes a note.
func (c *Client) DeleteDiaryEntry(ctx context.Context, id int64) error {
	return api.DeleteDiaryEntry(ctx, c.conn(), id)
}

// --------------------------------------------------------------------
// Contact operations
// --------------------------------------------------------------------

// ListContacts returns the contacts of the session user.
func (c *Client) ListContacts(ctx context.Context) ([]Contact, error) {
	return api.ListContacts(ctx, c.conn())
}

// CreateContact stores a contact; a photo is uploaded as multipart.
func (c *Client) CreateContact(ctx context.Context, in ContactInput) (*Contact, error) {
	return api.CreateContact(ctx, c.conn(), in)
}

// UpdateContact patches a contact.
func (c *Client) UpdateContact(ctx context.Context, id int64, in ContactInput) (*Contact, error) {
	return api.UpdateContact(ctx, c.conn(), id, in)
}

// DeleteContact deletes a contact.
func (c *Client) DeleteContact(ctx context.Context, id int64) error {
	return api.DeleteContact(ctx, c.conn(), id)
}

// --------------------------------------------------------------------
// Chat operations
// --------------------------------------------------------------------

// ChatHistory returns the persisted conversation, oldest first.
func (c *Client) ChatHistory(ctx context.Context) ([]ChatTurn, error) {
	return api.ChatHistory(ctx, c.conn())
}

// SendChatMessage sends one message and returns the assistant's reply.
func (c *Client) SendChatMessage(ctx context.Context, message string) (string, error) {
	return api.SendChatMessage(ctx, c.conn(), message)
}
