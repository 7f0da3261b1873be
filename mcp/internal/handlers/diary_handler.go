package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/views"
)

// DiaryHandler exposes diary tools over a DiaryBook.
type DiaryHandler struct {
	book *views.DiaryBook
}

func NewDiaryHandler(b *views.DiaryBook) *DiaryHandler { return &DiaryHandler{book: b} }

func (dh *DiaryHandler) RegisterTools(s *server.MCPServer) error {
	list := mcp.NewTool("list_diary_entries",
		mcp.WithDescription("List diary notes"),
	)
	create := mcp.NewTool("create_diary_entry",
		mcp.WithDescription("Write a diary note; attach a photo or audio by local file path"),
		mcp.WithString("text", mcp.Description("Note text, or caption of an attachment")),
		mcp.WithString("photo_path", mcp.Description("Local path of a photo to upload")),
		mcp.WithString("audio_path", mcp.Description("Local path of an audio file to upload")),
	)
	del := mcp.NewTool("delete_diary_entry",
		mcp.WithDescription("Delete a diary note"),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
	)
	s.AddTool(list, dh.handleList)
	s.AddTool(create, dh.handleCreate)
	s.AddTool(del, dh.handleDelete)
	return nil
}

func (dh *DiaryHandler) handleList(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	if err := dh.book.Load(ctx); err != nil {
		return toolError("list_diary_entries", err, time.Since(start)), nil
	}
	return jsonResult(dh.book.Items()), nil
}

// openAttachment opens path for upload; the caller closes the file.
func openAttachment(path string) (*client.Attachment, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &client.Attachment{Filename: filepath.Base(path), Content: f}, f, nil
}

func (dh *DiaryHandler) handleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form := views.DiaryForm{Kind: views.DiaryText, Text: optString(req, "text")}

	if p := optString(req, "photo_path"); p != "" {
		att, f, err := openAttachment(p)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		defer f.Close()
		form.Kind, form.Photo = views.DiaryPhoto, att
	}
	if p := optString(req, "audio_path"); p != "" {
		att, f, err := openAttachment(p)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		defer f.Close()
		if form.Photo == nil {
			form.Kind = views.DiaryAudio
		}
		form.Audio = att
	}

	start := time.Now()
	e, err := dh.book.Create(ctx, form)
	if err != nil {
		return toolError("create_diary_entry", err, time.Since(start)), nil
	}
	return savedResult(e), nil
}

func (dh *DiaryHandler) handleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := argID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start := time.Now()
	if err := dh.book.Delete(ctx, id); err != nil {
		return toolError("delete_diary_entry", err, time.Since(start)), nil
	}
	return jsonResult(map[string]any{"deleted": id}), nil
}
