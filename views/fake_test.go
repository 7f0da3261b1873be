package views

import (
	"context"
	"errors"
	"sync"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
)

// fakeBackend is an in-memory Backend. failWith, when set, is returned by every call.
type fakeBackend struct {
	mu       sync.Mutex
	nextID   int64
	failWith error

	reminders []client.Reminder
	entries   []client.DiaryEntry
	contacts  []client.Contact
	history   []client.ChatTurn
	sent      []string
	answer    string

	created   []client.ReminderInput
	contactIn []client.ContactInput
	logins    []client.LoginRequest
	regs      []client.RegisterRequest
	logouts   int
	authResp  client.AuthResponse
}

func (f *fakeBackend) id() int64 { f.nextID++; return f.nextID }

func (f *fakeBackend) ListReminders(context.Context) ([]client.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return append([]client.Reminder(nil), f.reminders...), nil
}

func (f *fakeBackend) GetReminder(_ context.Context, id int64) (*client.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reminders {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, errors.New("Não encontrado.")
}

func (f *fakeBackend) CreateReminder(_ context.Context, in client.ReminderInput) (*client.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.created = append(f.created, in)
	due, err := client.ParseTimestamp(in.DueAt)
	if err != nil {
		return nil, err
	}
	r := client.Reminder{ID: f.id(), Title: in.Title, Description: in.Description, DueAt: due, Type: in.Type}
	if in.Done != nil {
		r.Done = *in.Done
	}
	f.reminders = append(f.reminders, r)
	return &r, nil
}

func (f *fakeBackend) UpdateReminder(_ context.Context, id int64, in client.ReminderInput) (*client.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	due, err := client.ParseTimestamp(in.DueAt)
	if err != nil {
		return nil, err
	}
	for i := range f.reminders {
		if f.reminders[i].ID == id {
			r := &f.reminders[i]
			r.Title, r.Description, r.DueAt, r.Type = in.Title, in.Description, due, in.Type
			if in.Done != nil {
				r.Done = *in.Done
			}
			out := *r
			return &out, nil
		}
	}
	return nil, errors.New("Não encontrado.")
}

func (f *fakeBackend) DeleteReminder(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.reminders, _ = removeByID(f.reminders, id, reminderID)
	return nil
}

func (f *fakeBackend) ListDiaryEntries(context.Context) ([]client.DiaryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]client.DiaryEntry(nil), f.entries...), f.failWith
}

func (f *fakeBackend) CreateDiaryEntry(_ context.Context, in client.DiaryInput) (*client.DiaryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := client.DiaryEntry{ID: f.id(), Text: in.Text}
	if in.Photo != nil {
		e.Photo = "/media/diario_fotos/" + in.Photo.Filename
	}
	if in.Audio != nil {
		e.Audio = "/media/diario_audios/" + in.Audio.Filename
	}
	f.entries = append(f.entries, e)
	return &e, nil
}

func (f *fakeBackend) DeleteDiaryEntry(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries, _ = removeByID(f.entries, id, entryID)
	return nil
}

func (f *fakeBackend) ListContacts(context.Context) ([]client.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]client.Contact(nil), f.contacts...), f.failWith
}

func (f *fakeBackend) CreateContact(_ context.Context, in client.ContactInput) (*client.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contactIn = append(f.contactIn, in)
	c := client.Contact{ID: f.id(), Name: in.Name, Phone: in.Phone, Emergency: in.Emergency}
	f.contacts = append(f.contacts, c)
	return &c, nil
}

func (f *fakeBackend) UpdateContact(_ context.Context, id int64, in client.ContactInput) (*client.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := client.Contact{ID: id, Name: in.Name, Phone: in.Phone, Emergency: in.Emergency}
	if !replaceByID(f.contacts, c, contactID) {
		return nil, errors.New("Não encontrado.")
	}
	return &c, nil
}

func (f *fakeBackend) DeleteContact(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts, _ = removeByID(f.contacts, id, contactID)
	return nil
}

func (f *fakeBackend) ChatHistory(context.Context) ([]client.ChatTurn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]client.ChatTurn(nil), f.history...), f.failWith
}

func (f *fakeBackend) SendChatMessage(_ context.Context, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return "", f.failWith
	}
	f.sent = append(f.sent, message)
	return f.answer, nil
}

func (f *fakeBackend) Register(_ context.Context, req client.RegisterRequest) (*client.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.regs = append(f.regs, req)
	return &client.AuthResponse{Username: req.Username}, nil
}

func (f *fakeBackend) Login(_ context.Context, req client.LoginRequest) (*client.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.logins = append(f.logins, req)
	resp := f.authResp
	return &resp, nil
}

func (f *fakeBackend) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	return f.failWith
}
