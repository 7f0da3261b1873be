package api

import (
	"context"
	"net/http"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client/internal/types"
)

const diaryPath = "/api/diario/"

// ListDiaryEntries returns the diary of the logged-in user.
func ListDiaryEntries(ctx context.Context, c Conn) ([]types.DiaryEntry, error) {
	var out []types.DiaryEntry
	err := c.do(ctx, call{
		resource: "diary",
		op:       "list diary entries",
		method:   http.MethodGet,
		path:     diaryPath,
		guarded:  true,
		fallback: "Erro ao carregar entradas do diário.",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDiaryEntry stores a note. Text-only notes go as JSON; a photo or audio
// attachment sends the whole entry as multipart.
func CreateDiaryEntry(ctx context.Context, c Conn, in types.DiaryInput) (*types.DiaryEntry, error) {
	cl := call{
		resource: "diary",
		op:       "create diary entry",
		method:   http.MethodPost,
		path:     diaryPath,
		guarded:  true,
		fallback: "Erro ao criar anotação no diário.",
	}
	if in.HasBinary() {
		form := &multipartBody{}
		if in.Text != "" {
			form.field("texto", in.Text)
		}
		form.file("foto", in.Photo)
		form.file("audio", in.Audio)
		cl.form = form
	} else {
		cl.json = struct {
			Text string `json:"texto"`
		}{in.Text}
	}

	var out *types.DiaryEntry
	if err := c.do(ctx, cl, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteDiaryEntry removes a note.
func DeleteDiaryEntry(ctx context.Context, c Conn, id int64) error {
	const op = "delete diary entry"
	if err := validateID(op, id); err != nil {
		return err
	}
	return c.do(ctx, call{
		resource: "diary",
		op:       op,
		method:   http.MethodDelete,
		path:     itemPath("diario", id),
		guarded:  true,
		fallback: "Erro ao excluir anotação do diário.",
	}, nil)
}
