package api

import (
	"context"
	"net/http"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client/internal/types"
)

const remindersPath = "/api/lembretes/"

// ListReminders returns the reminders of the logged-in user.
func ListReminders(ctx context.Context, c Conn) ([]types.Reminder, error) {
	var out []types.Reminder
	err := c.do(ctx, call{
		resource: "reminders",
		op:       "list reminders",
		method:   http.MethodGet,
		path:     remindersPath,
		guarded:  true,
		fallback: "Erro ao carregar lembretes.",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetReminder fetches one reminder, typically for editing.
func GetReminder(ctx context.Context, c Conn, id int64) (*types.Reminder, error) {
	const op = "get reminder"
	if err := validateID(op, id); err != nil {
		return nil, err
	}
	var out *types.Reminder
	err := c.do(ctx, call{
		resource: "reminders",
		op:       op,
		method:   http.MethodGet,
		path:     itemPath("lembretes", id),
		guarded:  true,
		fallback: "Erro ao buscar lembrete.",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReminder stores a new reminder.
func CreateReminder(ctx context.Context, c Conn, in types.ReminderInput) (*types.Reminder, error) {
	var out *types.Reminder
	err := c.do(ctx, call{
		resource: "reminders",
		op:       "create reminder",
		method:   http.MethodPost,
		path:     remindersPath,
		guarded:  true,
		json:     in,
		fallback: "Erro ao criar lembrete.",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateReminder patches an existing reminder.
func UpdateReminder(ctx context.Context, c Conn, id int64, in types.ReminderInput) (*types.Reminder, error) {
	const op = "update reminder"
	if err := validateID(op, id); err != nil {
		return nil, err
	}
	var out *types.Reminder
	err := c.do(ctx, call{
		resource: "reminders",
		op:       op,
		method:   http.MethodPatch,
		path:     itemPath("lembretes", id),
		guarded:  true,
		json:     in,
		fallback: "Erro ao atualizar lembrete.",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteReminder removes a reminder. The backend answers 204 without a body.
func DeleteReminder(ctx context.Context, c Conn, id int64) error {
	const op = "delete reminder"
	if err := validateID(op, id); err != nil {
		return err
	}
	return c.do(ctx, call{
		resource: "reminders",
		op:       op,
		method:   http.MethodDelete,
		path:     itemPath("lembretes", id),
		guarded:  true,
		fallback: "Erro ao excluir lembrete.",
	}, nil)
}
