package api

import (
	"context"
	"net/http"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client/internal/types"
)

const chatPath = "/api/chat/"

// ChatHistory returns the persisted conversation, oldest first.
func ChatHistory(ctx context.Context, c Conn) ([]types.ChatTurn, error) {
	var out []types.ChatTurn
	err := c.do(ctx, call{
		resource: "chat",
		op:       "chat history",
		method:   http.MethodGet,
		path:     chatPath,
		guarded:  true,
		fallback: "Erro ao carregar histórico.",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SendChatMessage posts one user message and returns the assistant's answer.
func SendChatMessage(ctx context.Context, c Conn, message string) (string, error) {
	var out types.ChatReply
	err := c.do(ctx, call{
		resource: "chat",
		op:       "send chat message",
		method:   http.MethodPost,
		path:     chatPath,
		guarded:  true,
		json:     types.ChatRequest{Message: message},
		fallback: "Erro ao enviar mensagem para o assistente.",
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Answer, nil
}
