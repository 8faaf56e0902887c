package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"talentboard/internal/domain"
)

// Pusher satisfies the push interfaces of both the notification and the
// message services.
type Pusher struct {
	mock.Mock
}

func (m *Pusher) PushToUser(userID uuid.UUID, event string, data any) {
	m.Called(userID, event, data)
}

func (m *Pusher) PushToRole(role domain.UserRole, event string, data any) {
	m.Called(role, event, data)
}

func (m *Pusher) Broadcast(event string, data any) {
	m.Called(event, data)
}
