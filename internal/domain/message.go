package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessageLength bounds message content, in characters.
const MaxMessageLength = 2000

// Message is one row of the flat append-only message log. A conversation
// between two users is not a stored entity; it is the set of messages
// exchanged in either direction, ordered by sent_at with seq breaking ties.
type Message struct {
	ID         uuid.UUID  `json:"id" db:"message_id"`
	Seq        int64      `json:"-" db:"seq"`
	SenderID   uuid.UUID  `json:"sender_id" db:"sender_id"`
	ReceiverID uuid.UUID  `json:"receiver_id" db:"receiver_id"`
	Content    string     `json:"content" db:"content"`
	IsRead     bool       `json:"is_read" db:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty" db:"read_at"`
	SentAt     time.Time  `json:"sent_at" db:"sent_at"`
}

type SendMessageInput struct {
	ReceiverID uuid.UUID `json:"receiver_id" validate:"required"`
	Content    string    `json:"content" validate:"required,max=2000"`
}

// Conversation is derived per query from the message log, one entry per
// distinct counterpart. Never persisted.
type Conversation struct {
	PartnerID       uuid.UUID `json:"partner_id" db:"partner_id"`
	PartnerName     string    `json:"partner_name" db:"partner_name"`
	LastMessage     string    `json:"last_message" db:"last_message"`
	LastMessageTime time.Time `json:"last_message_time" db:"last_message_time"`
	UnreadCount     int64     `json:"unread_count" db:"unread_count"`
}
