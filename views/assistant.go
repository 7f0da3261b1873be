package views

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
)

// Greeting opens an empty conversation.
const Greeting = "Olá! Como posso ajudar você hoje?"

// Narration receives each new assistant reply; *voice.Narrator satisfies it.
type Narration interface {
	AutoNarrate(msg client.ChatMessage)
}

// Assistant is the chat transcript with its input buffer.
type Assistant struct {
	status

	api  ChatAPI
	narr Narration

	mu       sync.Mutex
	messages []client.ChatMessage
	input    string
}

// NewAssistant returns an assistant. narr may be nil.
func NewAssistant(api ChatAPI, narr Narration) *Assistant {
	return &Assistant{api: api, narr: narr}
}

func newMessage(sender client.Sender, text string) client.ChatMessage {
	return client.ChatMessage{ID: uuid.NewString(), Sender: sender, Text: text}
}

// Hydrate replaces the transcript with the stored history, or the greeting
// when there is none. On failure the greeting is shown and the error returned.
func (a *Assistant) Hydrate(ctx context.Context) error {
	turns, err := a.api.ChatHistory(ctx)
	msgs := make([]client.ChatMessage, 0, len(turns)+1)
	for _, t := range turns {
		msgs = append(msgs, newMessage(t.Sender(), t.Content))
	}
	if len(msgs) == 0 {
		msgs = append(msgs, newMessage(client.SenderBot, Greeting))
	}
	a.mu.Lock()
	a.messages = msgs
	a.mu.Unlock()
	return a.set(err, "Erro ao carregar histórico.")
}

// Messages returns the transcript, oldest first.
func (a *Assistant) Messages() []client.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]client.ChatMessage(nil), a.messages...)
}

// LatestBotMessage returns the newest assistant message, nil when none.
func (a *Assistant) LatestBotMessage() *client.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := len(a.messages) - 1; i >= 0; i-- {
		if a.messages[i].Sender == client.SenderBot {
			m := a.messages[i]
			return &m
		}
	}
	return nil
}

// SetInput replaces the input buffer; the voice bridge feeds transcripts here.
func (a *Assistant) SetInput(text string) {
	a.mu.Lock()
	a.input = text
	a.mu.Unlock()
}

// Input returns the input buffer.
func (a *Assistant) Input() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.input
}

// Send posts the trimmed input buffer. An empty buffer is a no-op returning nil.
// The user message is appended and the buffer cleared before the request;
// the reply is appended and handed to narration.
func (a *Assistant) Send(ctx context.Context) (*client.ChatMessage, error) {
	a.mu.Lock()
	text := strings.TrimSpace(a.input)
	if text == "" {
		a.mu.Unlock()
		return nil, nil
	}
	a.messages = append(a.messages, newMessage(client.SenderUser, text))
	a.input = ""
	a.mu.Unlock()

	answer, err := a.api.SendChatMessage(ctx, text)
	if err != nil {
		return nil, a.set(err, "Erro ao enviar mensagem para o assistente.")
	}

	reply := newMessage(client.SenderBot, answer)
	a.mu.Lock()
	a.messages = append(a.messages, reply)
	a.mu.Unlock()

	if a.narr != nil {
		a.narr.AutoNarrate(reply)
	}
	return &reply, a.set(nil, "")
}

// Ask sets the input to text and sends it.
func (a *Assistant) Ask(ctx context.Context, text string) (*client.ChatMessage, error) {
	a.SetInput(text)
	return a.Send(ctx)
}
