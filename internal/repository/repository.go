package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Notification NotificationRepository
	Message      MessageRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Notification: NewNotificationRepository(db),
		Message:      NewMessageRepository(db),
	}
}
