package service

import (
	"github.com/redis/go-redis/v9"

	"talentboard/internal/config"
	"talentboard/internal/repository"
	"talentboard/internal/service/auth"
	"talentboard/internal/service/email"
	"talentboard/internal/service/event"
	"talentboard/internal/service/message"
	"talentboard/internal/service/notification"
	"talentboard/internal/ws"
)

type Services struct {
	Auth         auth.Service
	Email        email.Service
	Notification notification.Service
	Message      message.Service
	Event        event.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, hub *ws.Hub, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, cfg)
	notificationService := notification.NewService(repos.Notification, repos.User, hub, redisClient)
	messageService := message.NewService(repos.Message, repos.User, hub, redisClient)
	messageService.SetNotificationService(notificationService)
	eventService := event.NewService(notificationService, repos.User, emailService)

	return &Services{
		Auth:         authService,
		Email:        emailService,
		Notification: notificationService,
		Message:      messageService,
		Event:        eventService,
	}
}
