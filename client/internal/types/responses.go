package types

// ------------------------------
// Response Types
// ------------------------------

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

// ChatReply is the assistant's answer to one message.
type ChatReply struct {
	Answer string `json:"resposta"`
}
