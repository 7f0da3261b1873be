package types

import "io"

// ------------------------------
// Request Types
// ------------------------------

// RegisterRequest holds parameters for a new account
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"nome_completo"`
	BirthDate string `json:"data_nascimento"` // YYYY-MM-DD
}

// LoginRequest holds credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ReminderInput is the body of create and update. DueAt is the local
// timestamp string in LocalLayout.
type ReminderInput struct {
	Title       string       `json:"titulo"`
	Description string       `json:"descricao"`
	DueAt       string       `json:"data_hora"`
	Type        ReminderType `json:"tipo"`
	Done        *bool        `json:"concluido,omitempty"`
}

// Attachment is a binary payload sent as one multipart file part.
type Attachment struct {
	Filename string
	Content  io.Reader
}

// DiaryInput creates a diary entry. Any attachment switches the request to multipart.
type DiaryInput struct {
	Text  string
	Photo *Attachment
	Audio *Attachment
}

// HasBinary reports whether the entry must be sent as multipart.
func (in DiaryInput) HasBinary() bool { return in.Photo != nil || in.Audio != nil }

// ContactInput creates or updates a contact. A photo switches the request to multipart.
type ContactInput struct {
	Name      string
	Phone     string
	Emergency bool
	Photo     *Attachment
}

// HasBinary reports whether the contact must be sent as multipart.
func (in ContactInput) HasBinary() bool { return in.Photo != nil }

// ChatRequest is the body of a chat POST.
type ChatRequest struct {
	Message string `json:"message"`
}
