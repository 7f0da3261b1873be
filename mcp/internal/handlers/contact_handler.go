package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/views"
)

// ContactHandler exposes contact tools over a ContactBook.
type ContactHandler struct {
	book *views.ContactBook
}

func NewContactHandler(b *views.ContactBook) *ContactHandler { return &ContactHandler{book: b} }

func (ch *ContactHandler) RegisterTools(s *server.MCPServer) error {
	formArgs := []mcp.ToolOption{
		mcp.WithString("name", mcp.Required(), mcp.Description("Contact name")),
		mcp.WithString("phone", mcp.Required(), mcp.Description("Phone number")),
		mcp.WithBoolean("emergency", mcp.Description("Show in the emergency list")),
		mcp.WithString("photo_path", mcp.Description("Local path of a photo to upload")),
	}

	list := mcp.NewTool("list_contacts",
		mcp.WithDescription("List contacts"),
		mcp.WithBoolean("emergency_only", mcp.Description("Only emergency contacts")),
	)
	create := mcp.NewTool("create_contact",
		append([]mcp.ToolOption{mcp.WithDescription("Add a contact")}, formArgs...)...,
	)
	update := mcp.NewTool("update_contact",
		append([]mcp.ToolOption{
			mcp.WithDescription("Replace the fields of a contact"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Contact id")),
		}, formArgs...)...,
	)
	del := mcp.NewTool("delete_contact",
		mcp.WithDescription("Delete a contact"),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Contact id")),
	)
	s.AddTool(list, ch.handleList)
	s.AddTool(create, ch.handleCreate)
	s.AddTool(update, ch.handleUpdate)
	s.AddTool(del, ch.handleDelete)
	return nil
}

// contactForm builds the form from the request; release closes an opened photo.
func contactForm(req mcp.CallToolRequest) (views.ContactForm, func(), error) {
	form := views.NewContactForm()
	form.Name = optString(req, "name")
	form.Phone = optString(req, "phone")
	form.Emergency, _ = optBool(req, "emergency")
	release := func() {}
	if p := optString(req, "photo_path"); p != "" {
		att, f, err := openAttachment(p)
		if err != nil {
			return form, release, err
		}
		form.Photo = att
		release = func() { _ = f.Close() }
	}
	return form, release, nil
}

func (ch *ContactHandler) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	if err := ch.book.Load(ctx); err != nil {
		return toolError("list_contacts", err, time.Since(start)), nil
	}
	if only, _ := optBool(req, "emergency_only"); only {
		return jsonResult(ch.book.Emergency()), nil
	}
	return jsonResult(ch.book.Items()), nil
}

func (ch *ContactHandler) handleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form, done, err := contactForm(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer done()

	start := time.Now()
	c, err := ch.book.Create(ctx, form)
	if err != nil {
		return toolError("create_contact", err, time.Since(start)), nil
	}
	return savedResult(c), nil
}

func (ch *ContactHandler) handleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := argID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	form, done, err := contactForm(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer done()

	start := time.Now()
	c, err := ch.book.Update(ctx, id, form)
	if err != nil {
		return toolError("update_contact", err, time.Since(start)), nil
	}
	return savedResult(c), nil
}

func (ch *ContactHandler) handleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := argID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start := time.Now()
	if err := ch.book.Delete(ctx, id); err != nil {
		return toolError("delete_contact", err, time.Since(start)), nil
	}
	return jsonResult(map[string]any{"deleted": id}), nil
}
