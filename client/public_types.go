package client

import "github.com/MatheusCastilhos/trabalho-final-ihc-2025/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
// Requests
type (
	RegisterRequest = types.RegisterRequest
	LoginRequest    = types.LoginRequest
	ReminderInput   = types.ReminderInput
	DiaryInput      = types.DiaryInput
	ContactInput    = types.ContactInput
	Attachment      = types.Attachment

	// Domain entities
	Reminder     = types.Reminder
	ReminderType = types.ReminderType
	DiaryEntry   = types.DiaryEntry
	Contact      = types.Contact
	ChatTurn     = types.ChatTurn
	ChatMessage  = types.ChatMessage
	Sender       = types.Sender
	Timestamp    = types.Timestamp

	// Responses
	AuthResponse = types.AuthResponse

	// Injection points
	TokenSource = types.TokenSource
)

const (
	ReminderMedication  = types.ReminderMedication
	ReminderMeal        = types.ReminderMeal
	ReminderAppointment = types.ReminderAppointment
	ReminderOther       = types.ReminderOther

	SenderUser = types.SenderUser
	SenderBot  = types.SenderBot

	// LocalLayout is the timestamp layout of ReminderInput.DueAt.
	LocalLayout = types.LocalLayout
)

// ReminderTypes lists the accepted reminder types in display order.
var ReminderTypes = types.ReminderTypes

// ValidReminderType reports whether t is an accepted reminder type.
func ValidReminderType(t ReminderType) bool { return types.ValidReminderType(t) }

// ParseTimestamp parses a backend timestamp; zone-less values are local.
func ParseTimestamp(s string) (Timestamp, error) { return types.ParseTimestamp(s) }
