// Package views holds the transient state behind each screen: the loaded
// lists, the selected day, form contents and the chat transcript. Models call
// the backend through small interfaces that *client.Client satisfies and are
// safe for concurrent use.
package views

import (
	"context"
	"sync"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
)

// ReminderAPI is the reminder subset of the backend client.
type ReminderAPI interface {
	ListReminders(ctx context.Context) ([]client.Reminder, error)
	GetReminder(ctx context.Context, id int64) (*client.Reminder, error)
	CreateReminder(ctx context.Context, in client.ReminderInput) (*client.Reminder, error)
	UpdateReminder(ctx context.Context, id int64, in client.ReminderInput) (*client.Reminder, error)
	DeleteReminder(ctx context.Context, id int64) error
}

// DiaryAPI is the diary subset of the backend client.
type DiaryAPI interface {
	ListDiaryEntries(ctx context.Context) ([]client.DiaryEntry, error)
	CreateDiaryEntry(ctx context.Context, in client.DiaryInput) (*client.DiaryEntry, error)
	DeleteDiaryEntry(ctx context.Context, id int64) error
}

// ContactAPI is the contact subset of the backend client.
type ContactAPI interface {
	ListContacts(ctx context.Context) ([]client.Contact, error)
	CreateContact(ctx context.Context, in client.ContactInput) (*client.Contact, error)
	UpdateContact(ctx context.Context, id int64, in client.ContactInput) (*client.Contact, error)
	DeleteContact(ctx context.Context, id int64) error
}

// ChatAPI is the assistant subset of the backend client.
type ChatAPI interface {
	ChatHistory(ctx context.Context) ([]client.ChatTurn, error)
	SendChatMessage(ctx context.Context, message string) (string, error)
}

// AuthAPI is the authentication subset of the backend client.
type AuthAPI interface {
	Register(ctx context.Context, req client.RegisterRequest) (*client.AuthResponse, error)
	Login(ctx context.Context, req client.LoginRequest) (*client.AuthResponse, error)
	Logout(ctx context.Context) error
}

// Backend is everything the views need; *client.Client implements it.
type Backend interface {
	ReminderAPI
	DiaryAPI
	ContactAPI
	ChatAPI
	AuthAPI
}

var _ Backend = (*client.Client)(nil)

// status keeps the message of the last failed operation, as a screen would show it.
type status struct {
	mu  sync.Mutex
	msg string
}

func (s *status) set(err error, fallback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.msg = ""
		return nil
	}
	s.msg = client.Message(err, fallback)
	return err
}

// Err returns the last failure message shown to the user, empty after a success.
func (s *status) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg
}

// removeByID drops the element with id, keeping the others in order.
func removeByID[T any](items []T, id int64, idOf func(T) int64) ([]T, bool) {
	for i := range items {
		if idOf(items[i]) == id {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), true
		}
	}
	return items, false
}

// replaceByID swaps the element with the same id in place.
func replaceByID[T any](items []T, item T, idOf func(T) int64) bool {
	id := idOf(item)
	for i := range items {
		if idOf(items[i]) == id {
			items[i] = item
			return true
		}
	}
	return false
}

// known reports whether a stored item came back with its id. A success whose
// body could not be parsed yields nil, and such an item is never listed.
func known[T any](item *T, idOf func(T) int64) bool { return item != nil && idOf(*item) > 0 }

func reminderID(r client.Reminder) int64 { return r.ID }
func entryID(e client.DiaryEntry) int64  { return e.ID }
func contactID(c client.Contact) int64   { return c.ID }
