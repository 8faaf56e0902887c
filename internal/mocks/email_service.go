package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendEmployerApprovedEmail(ctx context.Context, toEmail, fullName string) error {
	args := m.Called(ctx, toEmail, fullName)
	return args.Error(0)
}

func (m *EmailService) SendEmployerRejectedEmail(ctx context.Context, toEmail, fullName, reason string) error {
	args := m.Called(ctx, toEmail, fullName, reason)
	return args.Error(0)
}

func (m *EmailService) SendAnnouncementEmail(ctx context.Context, toEmail, fullName, title, message string) error {
	args := m.Called(ctx, toEmail, fullName, title, message)
	return args.Error(0)
}
