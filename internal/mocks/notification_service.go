package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"talentboard/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) NotifySystemWide(ctx context.Context, input domain.CreateNotificationInput, createdBy *uuid.UUID) (int, error) {
	args := m.Called(ctx, input, createdBy)
	return args.Int(0), args.Error(1)
}

func (m *NotificationService) NotifyRole(ctx context.Context, role string, input domain.CreateNotificationInput, createdBy *uuid.UUID) (int, error) {
	args := m.Called(ctx, role, input, createdBy)
	return args.Int(0), args.Error(1)
}

func (m *NotificationService) NotifyUser(ctx context.Context, userID uuid.UUID, input domain.CreateNotificationInput, createdBy *uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, userID, input, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, recipientID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) GetByID(ctx context.Context, callerID, id uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, callerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, callerID, id uuid.UUID) error {
	args := m.Called(ctx, callerID, id)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}

func (m *NotificationService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	args := m.Called(ctx, callerID, id)
	return args.Error(0)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}
