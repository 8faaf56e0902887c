package notification

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"talentboard/internal/domain"
	"talentboard/internal/repository"
)

const unreadCacheTTL = 5 * time.Minute

// Pusher delivers realtime events to currently-connected clients. Delivery
// is best-effort and never blocks or fails the durable write; the hub in
// internal/ws satisfies this.
type Pusher interface {
	PushToUser(userID uuid.UUID, event string, data any)
	PushToRole(role domain.UserRole, event string, data any)
	Broadcast(event string, data any)
}

type Service interface {
	NotifySystemWide(ctx context.Context, input domain.CreateNotificationInput, createdBy *uuid.UUID) (int, error)
	NotifyRole(ctx context.Context, role string, input domain.CreateNotificationInput, createdBy *uuid.UUID) (int, error)
	NotifyUser(ctx context.Context, userID uuid.UUID, input domain.CreateNotificationInput, createdBy *uuid.UUID) (*domain.Notification, error)

	List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetByID(ctx context.Context, callerID, id uuid.UUID) (*domain.Notification, error)
	MarkAsRead(ctx context.Context, callerID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error
	Delete(ctx context.Context, callerID, id uuid.UUID) error
	GetUnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	pusher    Pusher
	redis     *redis.Client
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, pusher Pusher, redisClient *redis.Client) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		pusher:    pusher,
		redis:     redisClient,
	}
}

func (s *service) NotifySystemWide(ctx context.Context, input domain.CreateNotificationInput, createdBy *uuid.UUID) (int, error) {
	if err := validateInput(input); err != nil {
		return 0, err
	}

	recipients, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	notifs := buildRows(recipients, input, createdBy)
	if err := s.notifRepo.CreateBatch(ctx, notifs); err != nil {
		return 0, err
	}
	s.invalidateUnreadAll(ctx, notifs)

	// One transport-level broadcast covers every connected client; the
	// per-recipient rows above remain the authoritative record.
	if s.pusher != nil && len(notifs) > 0 {
		s.pusher.Broadcast(domain.EventReceiveNotification, pushPayload(notifs[0]))
	}

	return len(notifs), nil
}

func (s *service) NotifyRole(ctx context.Context, role string, input domain.CreateNotificationInput, createdBy *uuid.UUID) (int, error) {
	parsed, ok := domain.ParseRole(role)
	if !ok {
		return 0, domain.ValidationError("unknown role %q", role)
	}
	if err := validateInput(input); err != nil {
		return 0, err
	}

	recipients, err := s.userRepo.ListActiveByRole(ctx, parsed)
	if err != nil {
		return 0, err
	}

	notifs := buildRows(recipients, input, createdBy)
	if err := s.notifRepo.CreateBatch(ctx, notifs); err != nil {
		return 0, err
	}
	s.invalidateUnreadAll(ctx, notifs)

	if s.pusher != nil && len(notifs) > 0 {
		s.pusher.PushToRole(parsed, domain.EventReceiveNotification, pushPayload(notifs[0]))
	}

	return len(notifs), nil
}

func (s *service) NotifyUser(ctx context.Context, userID uuid.UUID, input domain.CreateNotificationInput, createdBy *uuid.UUID) (*domain.Notification, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFoundError("user %s", userID)
	}

	notif := newRow(userID, input, createdBy)
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, err
	}
	s.invalidateUnread(ctx, userID)

	if s.pusher != nil {
		s.pusher.PushToUser(userID, domain.EventReceiveNotification, pushPayload(notif))
	}

	return notif, nil
}

func (s *service) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByRecipient(ctx, recipientID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) GetByID(ctx context.Context, callerID, id uuid.UUID) (*domain.Notification, error) {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notif == nil {
		return nil, domain.NotFoundError("notification %s", id)
	}
	if notif.RecipientID != callerID {
		return nil, domain.ForbiddenError("notification %s does not belong to the caller", id)
	}
	return notif, nil
}

func (s *service) MarkAsRead(ctx context.Context, callerID, id uuid.UUID) error {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notif == nil {
		return domain.NotFoundError("notification %s", id)
	}
	if notif.RecipientID != callerID {
		return domain.ForbiddenError("read state may only be changed by the recipient")
	}

	if err := s.notifRepo.MarkAsRead(ctx, id); err != nil {
		return err
	}
	s.invalidateUnread(ctx, callerID)
	return nil
}

func (s *service) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	if err := s.notifRepo.MarkAllAsRead(ctx, recipientID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, recipientID)
	return nil
}

// Delete is idempotent: deleting a notification that no longer exists
// succeeds. Ownership is still enforced when the row is present.
func (s *service) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notif == nil {
		return nil
	}
	if notif.RecipientID != callerID {
		return domain.ForbiddenError("notification %s does not belong to the caller", id)
	}

	if err := s.notifRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateUnread(ctx, callerID)
	return nil
}

func (s *service) GetUnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	key := unreadKey(recipientID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		_ = s.redis.Set(ctx, key, count, unreadCacheTTL).Err()
	}
	return count, nil
}

func (s *service) invalidateUnread(ctx context.Context, recipientID uuid.UUID) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, unreadKey(recipientID)).Err()
	}
}

func (s *service) invalidateUnreadAll(ctx context.Context, notifs []*domain.Notification) {
	if s.redis == nil || len(notifs) == 0 {
		return
	}
	keys := make([]string, 0, len(notifs))
	for _, notif := range notifs {
		keys = append(keys, unreadKey(notif.RecipientID))
	}
	_ = s.redis.Del(ctx, keys...).Err()
}

func unreadKey(recipientID uuid.UUID) string {
	return fmt.Sprintf("notif:unread:%s", recipientID)
}

func validateInput(input domain.CreateNotificationInput) error {
	if input.Title == "" {
		return domain.ValidationError("title is required")
	}
	if input.Message == "" {
		return domain.ValidationError("message is required")
	}
	if t := domain.NotificationType(input.Type); !t.IsValid() {
		return domain.ValidationError("unknown notification type %q", input.Type)
	}
	return nil
}

func newRow(recipientID uuid.UUID, input domain.CreateNotificationInput, createdBy *uuid.UUID) *domain.Notification {
	return &domain.Notification{
		ID:              uuid.New(),
		RecipientID:     recipientID,
		Title:           input.Title,
		Message:         input.Message,
		Type:            domain.NotificationType(input.Type),
		Category:        input.Category,
		RelatedEntityID: input.RelatedEntityID,
		CreatedBy:       createdBy,
	}
}

func buildRows(recipients []domain.User, input domain.CreateNotificationInput, createdBy *uuid.UUID) []*domain.Notification {
	notifs := make([]*domain.Notification, 0, len(recipients))
	for _, user := range recipients {
		notifs = append(notifs, newRow(user.ID, input, createdBy))
	}
	return notifs
}

func pushPayload(notif *domain.Notification) domain.NotificationPush {
	return domain.NotificationPush{
		Title:           notif.Title,
		Message:         notif.Message,
		Type:            notif.Type,
		Category:        notif.Category,
		RelatedEntityID: notif.RelatedEntityID,
		CreatedAt:       notif.CreatedAt,
	}
}
