package views

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
)

// Reminder form messages.
const (
	MsgReminderWhenRequired  = "Por favor, preencha data e horário do lembrete."
	MsgReminderTitleRequired = "Por favor, preencha o título do lembrete."
	MsgReminderTypeInvalid   = "Tipo de lembrete inválido."
)

// Repeat frequencies offered by the form. They are not stored by the backend.
const (
	RepeatDaily   = "diario"
	RepeatWeekly  = "semanal"
	RepeatMonthly = "mensal"
)

const (
	dateLayout  = "2006-01-02"
	timeLayout  = "15:04"
	labelLayout = "02/01/2006"
)

// ReminderForm is the content of the new/edit reminder screen.
// Date is YYYY-MM-DD and Time is HH:MM.
type ReminderForm struct {
	Date  string
	Time  string
	Title string
	Type  client.ReminderType
	Notes string
	Done  *bool

	// Kept on screen only.
	Repeat          bool
	RepeatFrequency string
}

// NewReminderForm returns the defaults of an empty form.
func NewReminderForm() ReminderForm {
	return ReminderForm{Type: client.ReminderMedication, RepeatFrequency: RepeatDaily}
}

// ReminderFormFrom pre-fills a form for editing r, in loc.
func ReminderFormFrom(r client.Reminder, loc *time.Location) ReminderForm {
	if loc == nil {
		loc = time.Local
	}
	due := r.DueAt.In(loc)
	done := r.Done
	f := NewReminderForm()
	f.Date = due.Format(dateLayout)
	f.Time = due.Format(timeLayout)
	f.Title = r.Title
	f.Type = r.Type
	f.Notes = r.Description
	f.Done = &done
	return f
}

// Input validates the form and builds the request body.
func (f ReminderForm) Input(op string) (client.ReminderInput, error) {
	if f.Date == "" || f.Time == "" {
		return client.ReminderInput{}, client.NewValidationError(op, MsgReminderWhenRequired)
	}
	if strings.TrimSpace(f.Title) == "" {
		return client.ReminderInput{}, client.NewValidationError(op, MsgReminderTitleRequired)
	}
	typ := f.Type
	if typ == "" {
		typ = client.ReminderOther
	}
	if !client.ValidReminderType(typ) {
		return client.ReminderInput{}, client.NewValidationError(op, MsgReminderTypeInvalid)
	}
	return client.ReminderInput{
		Title:       f.Title,
		Description: f.Notes,
		DueAt:       f.Date + "T" + f.Time + ":00",
		Type:        typ,
		Done:        f.Done,
	}, nil
}

// ReminderBoard is the reminder list filtered to one calendar day.
type ReminderBoard struct {
	status

	api ReminderAPI
	now func() time.Time
	loc *time.Location

	mu       sync.Mutex
	selected time.Time // midnight of the selected day in loc
	items    []client.Reminder
}

// BoardOption configures a ReminderBoard.
type BoardOption func(*ReminderBoard)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) BoardOption {
	return func(b *ReminderBoard) { b.now = now }
}

// WithLocation sets the zone days are computed in. Defaults to time.Local.
func WithLocation(loc *time.Location) BoardOption {
	return func(b *ReminderBoard) {
		if loc != nil {
			b.loc = loc
		}
	}
}

// NewReminderBoard returns a board showing today.
func NewReminderBoard(api ReminderAPI, opts ...BoardOption) *ReminderBoard {
	b := &ReminderBoard{api: api, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(b)
	}
	b.selected = b.midnight(b.now())
	return b
}

func (b *ReminderBoard) midnight(t time.Time) time.Time {
	t = t.In(b.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, b.loc)
}

// Load replaces the list with the backend's.
func (b *ReminderBoard) Load(ctx context.Context) error {
	items, err := b.api.ListReminders(ctx)
	if err != nil {
		return b.set(err, "Erro ao carregar lembretes.")
	}
	b.mu.Lock()
	b.items = items
	b.mu.Unlock()
	return b.set(nil, "")
}

// Items returns every loaded reminder in backend order.
func (b *ReminderBoard) Items() []client.Reminder {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]client.Reminder{}, b.items...)
}

// SelectedDate returns midnight of the selected day.
func (b *ReminderBoard) SelectedDate() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected
}

// ChangeDay moves the selection by delta calendar days.
func (b *ReminderBoard) ChangeDay(delta int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = b.selected.AddDate(0, 0, delta)
}

// SelectDate selects the calendar day of t.
func (b *ReminderBoard) SelectDate(t time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, b.loc)
}

// SelectDateString selects a YYYY-MM-DD day. An empty value keeps the selection.
func (b *ReminderBoard) SelectDateString(s string) error {
	if s == "" {
		return nil
	}
	d, err := time.ParseInLocation(dateLayout, s, b.loc)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	b.SelectDate(d)
	return nil
}

// BackToToday selects the current day.
func (b *ReminderBoard) BackToToday() {
	today := b.midnight(b.now())
	b.mu.Lock()
	b.selected = today
	b.mu.Unlock()
}

// IsToday reports whether the selected day is the current day.
func (b *ReminderBoard) IsToday() bool {
	return sameDay(b.SelectedDate(), b.now().In(b.loc))
}

// DateLabel renders the selected day as dd/mm/yyyy, prefixed with "Hoje – " for today.
func (b *ReminderBoard) DateLabel() string {
	label := b.SelectedDate().Format(labelLayout)
	if b.IsToday() {
		return "Hoje – " + label
	}
	return label
}

// ForSelectedDay returns the reminders due on the selected day, earliest first.
func (b *ReminderBoard) ForSelectedDay() []client.Reminder {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []client.Reminder
	for _, r := range b.items {
		if sameDay(r.DueAt.In(b.loc), b.selected) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt.Time) })
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Get fetches one reminder for editing. A success without a usable body fails
// with the fetch fallback.
func (b *ReminderBoard) Get(ctx context.Context, id int64) (*client.Reminder, error) {
	r, err := b.api.GetReminder(ctx, id)
	if err == nil && !known(r, reminderID) {
		err = client.NewValidationError("get reminder", "Erro ao buscar lembrete.")
	}
	if err != nil {
		return nil, b.set(err, "Erro ao buscar lembrete.")
	}
	return r, b.set(nil, "")
}

// Create validates form, stores the reminder and appends it. The result is nil
// when the backend accepted the reminder without returning it.
func (b *ReminderBoard) Create(ctx context.Context, form ReminderForm) (*client.Reminder, error) {
	in, err := form.Input("create reminder")
	if err != nil {
		return nil, b.set(err, "")
	}
	r, err := b.api.CreateReminder(ctx, in)
	if err != nil {
		return nil, b.set(err, "Erro ao criar lembrete.")
	}
	if !known(r, reminderID) {
		return nil, b.set(nil, "")
	}
	b.mu.Lock()
	b.items = append(b.items, *r)
	b.mu.Unlock()
	return r, b.set(nil, "")
}

// Update validates form, patches the reminder and replaces it in place.
func (b *ReminderBoard) Update(ctx context.Context, id int64, form ReminderForm) (*client.Reminder, error) {
	in, err := form.Input("update reminder")
	if err != nil {
		return nil, b.set(err, "")
	}
	r, err := b.api.UpdateReminder(ctx, id, in)
	if err != nil {
		return nil, b.set(err, "Erro ao atualizar lembrete.")
	}
	if !known(r, reminderID) {
		return nil, b.set(nil, "")
	}
	b.mu.Lock()
	replaceByID(b.items, *r, reminderID)
	b.mu.Unlock()
	return r, b.set(nil, "")
}

// SetDone marks a loaded reminder as done or pending.
func (b *ReminderBoard) SetDone(ctx context.Context, id int64, done bool) (*client.Reminder, error) {
	b.mu.Lock()
	var current *client.Reminder
	for i := range b.items {
		if b.items[i].ID == id {
			r := b.items[i]
			current = &r
			break
		}
	}
	b.mu.Unlock()
	if current == nil {
		loaded, err := b.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		current = loaded
	}
	form := ReminderFormFrom(*current, b.loc)
	form.Done = &done
	return b.Update(ctx, id, form)
}

// Delete removes the reminder remotely, then locally; the others keep their order.
func (b *ReminderBoard) Delete(ctx context.Context, id int64) error {
	if err := b.api.DeleteReminder(ctx, id); err != nil {
		return b.set(err, "Erro ao excluir lembrete.")
	}
	b.mu.Lock()
	b.items, _ = removeByID(b.items, id, reminderID)
	b.mu.Unlock()
	return b.set(nil, "")
}
