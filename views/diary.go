package views

import (
	"context"
	"strings"
	"sync"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
)

// DiaryKind is the kind of note chosen on the form.
type DiaryKind string

const (
	DiaryText  DiaryKind = "texto"
	DiaryPhoto DiaryKind = "foto"
	DiaryAudio DiaryKind = "audio"
)

// Diary form messages.
const (
	MsgDiaryTextRequired  = "Por favor, escreva sua anotação."
	MsgDiaryPhotoRequired = "Por favor, selecione uma foto."
	MsgDiaryAudioRequired = "Por favor, selecione um áudio."
)

// DiaryForm is the content of the new note screen.
type DiaryForm struct {
	Kind  DiaryKind
	Text  string
	Photo *client.Attachment
	Audio *client.Attachment
}

// Input validates the form for its kind and builds the request.
// Text is sent alongside any attachment as a caption.
func (f DiaryForm) Input() (client.DiaryInput, error) {
	const op = "create diary entry"
	switch f.Kind {
	case DiaryPhoto:
		if f.Photo == nil {
			return client.DiaryInput{}, client.NewValidationError(op, MsgDiaryPhotoRequired)
		}
		return client.DiaryInput{Text: f.Text, Photo: f.Photo}, nil
	case DiaryAudio:
		if f.Audio == nil {
			return client.DiaryInput{}, client.NewValidationError(op, MsgDiaryAudioRequired)
		}
		return client.DiaryInput{Text: f.Text, Audio: f.Audio}, nil
	default:
		if strings.TrimSpace(f.Text) == "" {
			return client.DiaryInput{}, client.NewValidationError(op, MsgDiaryTextRequired)
		}
		return client.DiaryInput{Text: f.Text}, nil
	}
}

// DiaryBook is the list of diary notes.
type DiaryBook struct {
	status

	api DiaryAPI

	mu    sync.Mutex
	items []client.DiaryEntry
}

// NewDiaryBook returns an empty book.
func NewDiaryBook(api DiaryAPI) *DiaryBook { return &DiaryBook{api: api} }

// Load replaces the list with the backend's.
func (d *DiaryBook) Load(ctx context.Context) error {
	items, err := d.api.ListDiaryEntries(ctx)
	if err != nil {
		return d.set(err, "Erro ao carregar entradas do diário.")
	}
	d.mu.Lock()
	d.items = items
	d.mu.Unlock()
	return d.set(nil, "")
}

// Items returns the loaded notes in backend order.
func (d *DiaryBook) Items() []client.DiaryEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]client.DiaryEntry{}, d.items...)
}

// Create validates form, stores the note and appends it. The result is nil
// when the backend accepted the note without returning it.
func (d *DiaryBook) Create(ctx context.Context, form DiaryForm) (*client.DiaryEntry, error) {
	in, err := form.Input()
	if err != nil {
		return nil, d.set(err, "")
	}
	e, err := d.api.CreateDiaryEntry(ctx, in)
	if err != nil {
		return nil, d.set(err, "Erro ao criar anotação no diário.")
	}
	if !known(e, entryID) {
		return nil, d.set(nil, "")
	}
	d.mu.Lock()
	d.items = append(d.items, *e)
	d.mu.Unlock()
	return e, d.set(nil, "")
}

// Delete removes the note remotely, then locally.
func (d *DiaryBook) Delete(ctx context.Context, id int64) error {
	if err := d.api.DeleteDiaryEntry(ctx, id); err != nil {
		return d.set(err, "Erro ao excluir anotação do diário.")
	}
	d.mu.Lock()
	d.items, _ = removeByID(d.items, id, entryID)
	d.mu.Unlock()
	return d.set(nil, "")
}
