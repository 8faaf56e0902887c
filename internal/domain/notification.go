package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID              uuid.UUID        `json:"id" db:"notification_id"`
	RecipientID     uuid.UUID        `json:"recipient_id" db:"recipient_id"`
	Title           string           `json:"title" db:"title"`
	Message         string           `json:"message" db:"message"`
	Type            NotificationType `json:"type" db:"type"`
	Category        *string          `json:"category,omitempty" db:"category"`
	RelatedEntityID *uuid.UUID       `json:"related_entity_id,omitempty" db:"related_entity_id"`
	CreatedBy       *uuid.UUID       `json:"created_by,omitempty" db:"created_by"`
	IsRead          bool             `json:"is_read" db:"is_read"`
	ReadAt          *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}

// NotificationType describes how the recipient set was chosen. Broadcast
// semantics are resolved at write time: every row targets one concrete user
// regardless of type.
type NotificationType string

const (
	NotifSystemWide   NotificationType = "SYSTEM_WIDE"
	NotifRoleTargeted NotificationType = "ROLE_TARGETED"
	NotifUserSpecific NotificationType = "USER_SPECIFIC"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifSystemWide, NotifRoleTargeted, NotifUserSpecific:
		return true
	default:
		return false
	}
}

// Notification categories correlate a row back to the domain event that
// produced it.
const (
	CategoryJobPosted    = "JOB_POSTED"
	CategoryStatusUpdate = "STATUS_UPDATE"
	CategoryInterview    = "INTERVIEW"
	CategoryAssessment   = "ASSESSMENT"
	CategoryAccount      = "ACCOUNT"
	CategoryNewMessage   = "NEW_MESSAGE"
)

type CreateNotificationInput struct {
	Title           string     `json:"title" validate:"required"`
	Message         string     `json:"message" validate:"required"`
	Type            string     `json:"type" validate:"required"`
	Category        *string    `json:"category,omitempty"`
	RelatedEntityID *uuid.UUID `json:"related_entity_id,omitempty"`
}
