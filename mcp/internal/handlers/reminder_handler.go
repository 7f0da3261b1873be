package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/views"
)

// ReminderHandler exposes reminder tools over a ReminderBoard.
type ReminderHandler struct {
	board *views.ReminderBoard
}

func NewReminderHandler(b *views.ReminderBoard) *ReminderHandler { return &ReminderHandler{board: b} }

type reminderLite struct {
	ID          int64  `json:"id"`
	Title       string `json:"titulo"`
	Description string `json:"descricao,omitempty"`
	DueAt       string `json:"data_hora"`
	Type        string `json:"tipo"`
	Done        bool   `json:"concluido"`
}

func toReminderLite(r client.Reminder) reminderLite {
	return reminderLite{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		DueAt:       r.DueAt.Local().Format(client.LocalLayout),
		Type:        string(r.Type),
		Done:        r.Done,
	}
}

func (rh *ReminderHandler) RegisterTools(s *server.MCPServer) error {
	formArgs := []mcp.ToolOption{
		mcp.WithString("date", mcp.Required(), mcp.Description("Day, YYYY-MM-DD")),
		mcp.WithString("time", mcp.Required(), mcp.Description("Time, HH:MM")),
		mcp.WithString("title", mcp.Required(), mcp.Description("What to remember")),
		mcp.WithString("type", mcp.Description("medicamento | refeicao | consulta | outro (default medicamento)")),
		mcp.WithString("notes", mcp.Description("Optional details")),
	}

	list := mcp.NewTool("list_reminders",
		mcp.WithDescription("List reminders due on one day, earliest first; defaults to today"),
		mcp.WithString("date", mcp.Description("Day, YYYY-MM-DD")),
	)
	create := mcp.NewTool("create_reminder",
		append([]mcp.ToolOption{mcp.WithDescription("Create a reminder")}, formArgs...)...,
	)
	update := mcp.NewTool("update_reminder",
		append([]mcp.ToolOption{
			mcp.WithDescription("Replace the fields of a reminder"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Reminder id")),
		}, formArgs...)...,
	)
	complete := mcp.NewTool("complete_reminder",
		mcp.WithDescription("Mark a reminder as done, or pending again with done=false"),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Reminder id")),
		mcp.WithBoolean("done", mcp.Description("Default true")),
	)
	del := mcp.NewTool("delete_reminder",
		mcp.WithDescription("Delete a reminder"),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Reminder id")),
	)
	s.AddTool(list, rh.handleList)
	s.AddTool(create, rh.handleCreate)
	s.AddTool(update, rh.handleUpdate)
	s.AddTool(complete, rh.handleComplete)
	s.AddTool(del, rh.handleDelete)
	return nil
}

func reminderForm(req mcp.CallToolRequest) views.ReminderForm {
	f := views.NewReminderForm()
	f.Date = optString(req, "date")
	f.Time = optString(req, "time")
	f.Title = optString(req, "title")
	f.Notes = optString(req, "notes")
	if t := optString(req, "type"); t != "" {
		f.Type = client.ReminderType(t)
	}
	return f
}

func (rh *ReminderHandler) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := optString(req, "date")
	log.Debug().Str("date", date).Msg("list_reminders invoked")

	start := time.Now()
	if err := rh.board.Load(ctx); err != nil {
		return toolError("list_reminders", err, time.Since(start)), nil
	}
	if date == "" {
		rh.board.BackToToday()
	} else if err := rh.board.SelectDateString(date); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	day := rh.board.ForSelectedDay()
	out := make([]reminderLite, len(day))
	for i, r := range day {
		out[i] = toReminderLite(r)
	}
	return jsonResult(map[string]any{"day": rh.board.DateLabel(), "reminders": out}), nil
}

func (rh *ReminderHandler) handleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	r, err := rh.board.Create(ctx, reminderForm(req))
	if err != nil {
		return toolError("create_reminder", err, time.Since(start)), nil
	}
	return reminderResult(r), nil
}

func (rh *ReminderHandler) handleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := argID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start := time.Now()
	r, err := rh.board.Update(ctx, id, reminderForm(req))
	if err != nil {
		return toolError("update_reminder", err, time.Since(start)), nil
	}
	return reminderResult(r), nil
}

func (rh *ReminderHandler) handleComplete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := argID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	done, ok := optBool(req, "done")
	if !ok {
		done = true
	}
	start := time.Now()
	r, err := rh.board.SetDone(ctx, id, done)
	if err != nil {
		return toolError("complete_reminder", err, time.Since(start)), nil
	}
	return reminderResult(r), nil
}

func (rh *ReminderHandler) handleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := argID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start := time.Now()
	if err := rh.board.Delete(ctx, id); err != nil {
		return toolError("delete_reminder", err, time.Since(start)), nil
	}
	return jsonResult(map[string]any{"deleted": id}), nil
}

func reminderResult(r *client.Reminder) *mcp.CallToolResult {
	if r == nil {
		return savedResult[reminderLite](nil)
	}
	lite := toReminderLite(*r)
	return savedResult(&lite)
}
