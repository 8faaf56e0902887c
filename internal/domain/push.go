package domain

import (
	"time"

	"github.com/google/uuid"
)

// Push event names as seen by connected clients. A push is a hint to
// re-query, never the authoritative record.
const (
	EventReceiveNotification = "ReceiveNotification"
	EventReceiveMessage      = "ReceiveMessage"
)

type NotificationPush struct {
	Title           string           `json:"title"`
	Message         string           `json:"message"`
	Type            NotificationType `json:"type"`
	Category        *string          `json:"category,omitempty"`
	RelatedEntityID *uuid.UUID       `json:"related_entity_id,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

type MessagePush struct {
	ID       uuid.UUID `json:"id"`
	SenderID uuid.UUID `json:"sender_id"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sent_at"`
}
