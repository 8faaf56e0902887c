package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"talentboard/internal/domain"
)

type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MessageRepository) GetConversation(ctx context.Context, userID, otherID uuid.UUID) ([]domain.Message, error) {
	args := m.Called(ctx, userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MessageRepository) ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

func (m *MessageRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MessageRepository) MarkConversationAsRead(ctx context.Context, receiverID, senderID uuid.UUID) error {
	args := m.Called(ctx, receiverID, senderID)
	return args.Error(0)
}

func (m *MessageRepository) CountUnread(ctx context.Context, receiverID uuid.UUID) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}
