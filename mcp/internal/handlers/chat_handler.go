package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/views"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/voice"
)

// listenTimeout bounds one voice capture.
const listenTimeout = 30 * time.Second

// ChatHandler exposes the assistant conversation and voice input.
type ChatHandler struct {
	assistant *views.Assistant
	bridge    *voice.Bridge
}

func NewChatHandler(a *views.Assistant, b *voice.Bridge) *ChatHandler {
	return &ChatHandler{assistant: a, bridge: b}
}

func (ch *ChatHandler) RegisterTools(s *server.MCPServer) error {
	history := mcp.NewTool("chat_history",
		mcp.WithDescription("Load the conversation with the assistant, oldest first"),
	)
	ask := mcp.NewTool("ask_assistant",
		mcp.WithDescription("Send a message to the assistant and return its reply"),
		mcp.WithString("message", mcp.Required(), mcp.Description("Message text")),
	)
	listen := mcp.NewTool("listen",
		mcp.WithDescription("Capture one spoken utterance and optionally send it to the assistant"),
		mcp.WithBoolean("send", mcp.Description("Send the transcript to the assistant (default false)")),
	)
	s.AddTool(history, ch.handleHistory)
	s.AddTool(ask, ch.handleAsk)
	s.AddTool(listen, ch.handleListen)
	return nil
}

func (ch *ChatHandler) handleHistory(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	if err := ch.assistant.Hydrate(ctx); err != nil {
		if client.IsUnauthenticated(err) {
			return toolError("chat_history", err, time.Since(start)), nil
		}
		// the greeting is still shown, matching the chat screen
		log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("chat history unavailable")
	}
	return jsonResult(ch.assistant.Messages()), nil
}

func (ch *ChatHandler) handleAsk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := req.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	log.Debug().Int("len", len(message)).Msg("ask_assistant invoked")

	start := time.Now()
	reply, err := ch.assistant.Ask(ctx, message)
	if err != nil {
		return toolError("ask_assistant", err, time.Since(start)), nil
	}
	if reply == nil {
		return mcp.NewToolResultError("message is empty"), nil
	}
	return jsonResult(reply), nil
}

func (ch *ChatHandler) handleListen(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	if err := ch.bridge.Check(); err != nil {
		return toolError("listen", err, time.Since(start)), nil
	}
	lctx, cancel := context.WithTimeout(ctx, listenTimeout)
	defer cancel()
	text, err := ch.bridge.Listen(lctx)
	if err != nil {
		return toolError("listen", err, time.Since(start)), nil
	}

	out := map[string]any{"transcript": text}
	if send, _ := optBool(req, "send"); send {
		reply, err := ch.assistant.Send(ctx)
		if err != nil {
			return toolError("listen", err, time.Since(start)), nil
		}
		out["reply"] = reply
	}
	return jsonResult(out), nil
}
