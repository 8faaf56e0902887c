package handler

import "talentboard/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	Notification *NotificationHandler
	Message      *MessageHandler
	Event        *EventHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Notification: NewNotificationHandler(services.Notification),
		Message:      NewMessageHandler(services.Message),
		Event:        NewEventHandler(services.Event),
	}
}
