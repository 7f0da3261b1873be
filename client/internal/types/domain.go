package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// ReminderType classifies a reminder.
type ReminderType string

const (
	ReminderMedication  ReminderType = "medicamento"
	ReminderMeal        ReminderType = "refeicao"
	ReminderAppointment ReminderType = "consulta"
	ReminderOther       ReminderType = "outro"
)

// ReminderTypes lists the accepted reminder types in display order.
var ReminderTypes = []ReminderType{ReminderMedication, ReminderMeal, ReminderAppointment, ReminderOther}

// Reminder represents a reminder owned by the authenticated user
type Reminder struct {
	ID          int64        `json:"id"`
	Title       string       `json:"titulo"`
	Description string       `json:"descricao"`
	DueAt       Timestamp    `json:"data_hora"`
	Type        ReminderType `json:"tipo"`
	Done        bool         `json:"concluido"`
	CreatedAt   *Timestamp   `json:"criado_em,omitempty"`
	Owner       string       `json:"usuario_username,omitempty"`
}

// DiaryEntry represents a diary note. In practice one of Text, Photo or Audio is set.
type DiaryEntry struct {
	ID        int64     `json:"id"`
	Text      string    `json:"texto"`
	Photo     string    `json:"foto"`
	Audio     string    `json:"audio"`
	CreatedAt Timestamp `json:"data_criacao"`
	Owner     string    `json:"usuario_username,omitempty"`
}

// Contact represents a (possibly emergency) contact
type Contact struct {
	ID        int64      `json:"id"`
	Name      string     `json:"nome"`
	Phone     string     `json:"telefone"`
	Emergency bool       `json:"is_emergencia"`
	Photo     string     `json:"foto"`
	CreatedAt *Timestamp `json:"criado_em,omitempty"`
	Owner     string     `json:"usuario_username,omitempty"`
}

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is one line of the assistant transcript.
type ChatMessage struct {
	ID     string `json:"id"`
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// ChatTurn is a persisted history item as returned by the backend.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Sender maps the backend role onto the transcript sender.
func (t ChatTurn) Sender() Sender {
	if t.Role == "user" {
		return SenderUser
	}
	return SenderBot
}

// ------------------------------
// Timestamps
// ------------------------------

// LocalLayout is the ISO-like local timestamp the backend accepts for data_hora.
const LocalLayout = "2006-01-02T15:04:05"

var localLayouts = []string{LocalLayout, "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02"}

// Timestamp decodes both zoned (RFC 3339) and zone-less backend timestamps.
// Zone-less values are read in the local time zone.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses s the way the JSON decoder does.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{t}, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*ts = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// MarshalJSON implements json.Marshaler using the local layout.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Format(LocalLayout))
}
