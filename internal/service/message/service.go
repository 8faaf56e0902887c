package message

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"talentboard/internal/domain"
	"talentboard/internal/repository"
	"talentboard/internal/service/notification"
)

const (
	unreadCacheTTL        = 5 * time.Minute
	conversationsCacheTTL = time.Minute
)

// Pusher is the slice of the realtime gateway the message store needs.
type Pusher interface {
	PushToUser(userID uuid.UUID, event string, data any)
}

type Service interface {
	SetNotificationService(notifSvc notification.Service)
	Send(ctx context.Context, senderID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error)
	GetConversation(ctx context.Context, userID, otherID uuid.UUID) ([]domain.Message, error)
	MarkAsRead(ctx context.Context, callerID, messageID uuid.UUID) error
	MarkConversationAsRead(ctx context.Context, userID, otherID uuid.UUID) error
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	notifSvc    notification.Service
	pusher      Pusher
	redis       *redis.Client
}

func NewService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, pusher Pusher, redisClient *redis.Client) Service {
	return &service{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		pusher:      pusher,
		redis:       redisClient,
	}
}

// SetNotificationService breaks the construction cycle between the message
// store and the fan-out engine.
func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

// Send appends one immutable row to the message log. The sender identity
// always comes from the authenticated caller, never from the request body.
// The push and the "New Message" notification are side effects: their
// failure never fails the send.
func (s *service) Send(ctx context.Context, senderID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domain.ValidationError("message content is required")
	}
	if len([]rune(content)) > domain.MaxMessageLength {
		return nil, domain.ValidationError("message content exceeds %d characters", domain.MaxMessageLength)
	}
	if input.ReceiverID == senderID {
		return nil, domain.ValidationError("cannot send a message to yourself")
	}

	receiver, err := s.userRepo.GetByID(ctx, input.ReceiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, domain.NotFoundError("user %s", input.ReceiverID)
	}

	msg := &domain.Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		Content:    content,
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx, senderID, input.ReceiverID)

	if s.pusher != nil {
		s.pusher.PushToUser(msg.ReceiverID, domain.EventReceiveMessage, domain.MessagePush{
			ID:       msg.ID,
			SenderID: msg.SenderID,
			Content:  msg.Content,
			SentAt:   msg.SentAt,
		})
	}

	if s.notifSvc != nil {
		category := domain.CategoryNewMessage
		notifInput := domain.CreateNotificationInput{
			Title:           "New Message",
			Message:         s.senderLabel(ctx, senderID) + " sent you a message",
			Type:            string(domain.NotifUserSpecific),
			Category:        &category,
			RelatedEntityID: &msg.ID,
		}
		if _, err := s.notifSvc.NotifyUser(ctx, msg.ReceiverID, notifInput, nil); err != nil {
			log.Printf("Failed to create new-message notification for user %s: %v", msg.ReceiverID, err)
		}
	}

	return msg, nil
}

func (s *service) ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	key := conversationsKey(userID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			var conversations []domain.Conversation
			if err := json.Unmarshal([]byte(cached), &conversations); err == nil {
				return conversations, nil
			}
		}
	}

	conversations, err := s.messageRepo.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}
	if conversations == nil {
		conversations = []domain.Conversation{}
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(conversations); err == nil {
			_ = s.redis.Set(ctx, key, encoded, conversationsCacheTTL).Err()
		}
	}

	return conversations, nil
}

func (s *service) GetConversation(ctx context.Context, userID, otherID uuid.UUID) ([]domain.Message, error) {
	messages, err := s.messageRepo.GetConversation(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

func (s *service) MarkAsRead(ctx context.Context, callerID, messageID uuid.UUID) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg == nil {
		return domain.NotFoundError("message %s", messageID)
	}
	if msg.ReceiverID != callerID {
		return domain.ForbiddenError("read state may only be changed by the receiver")
	}

	if err := s.messageRepo.MarkAsRead(ctx, messageID); err != nil {
		return err
	}
	s.invalidateCaches(ctx, callerID, msg.SenderID)
	return nil
}

// MarkConversationAsRead is idempotent: once every inbound message from
// otherID is read, repeated calls are no-ops.
func (s *service) MarkConversationAsRead(ctx context.Context, userID, otherID uuid.UUID) error {
	if err := s.messageRepo.MarkConversationAsRead(ctx, userID, otherID); err != nil {
		return err
	}
	s.invalidateCaches(ctx, userID, otherID)
	return nil
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	key := unreadKey(userID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.messageRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		_ = s.redis.Set(ctx, key, count, unreadCacheTTL).Err()
	}
	return count, nil
}

func (s *service) senderLabel(ctx context.Context, senderID uuid.UUID) string {
	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil || sender == nil {
		return "Someone"
	}
	return sender.FullName
}

// The conversation list and unread count are invalidated-on-write
// projections of the message log, never a second source of truth.
func (s *service) invalidateCaches(ctx context.Context, userIDs ...uuid.UUID) {
	if s.redis == nil {
		return
	}
	keys := make([]string, 0, len(userIDs)*2)
	for _, id := range userIDs {
		keys = append(keys, conversationsKey(id), unreadKey(id))
	}
	_ = s.redis.Del(ctx, keys...).Err()
}

func conversationsKey(userID uuid.UUID) string {
	return fmt.Sprintf("conversations:%s", userID)
}

func unreadKey(userID uuid.UUID) string {
	return fmt.Sprintf("msg:unread:%s", userID)
}
