package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"talentboard/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	CreateBatch(ctx context.Context, notifs []*domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, recipient_id, title, message, type, category, related_entity_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.RecipientID, notif.Title, notif.Message, notif.Type,
		notif.Category, notif.RelatedEntityID, notif.CreatedBy,
	).Scan(&notif.CreatedAt)
}

// CreateBatch inserts one row per recipient in a single transaction so a
// fan-out either records every recipient or none (no partial writes).
func (r *notificationRepository) CreateBatch(ctx context.Context, notifs []*domain.Notification) error {
	if len(notifs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO notifications (notification_id, recipient_id, title, message, type, category, related_entity_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	for _, notif := range notifs {
		if err := tx.QueryRowxContext(ctx, query,
			notif.ID, notif.RecipientID, notif.Title, notif.Message, notif.Type,
			notif.Category, notif.RelatedEntityID, notif.CreatedBy,
		).Scan(&notif.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE notification_id = $1`

	err := r.db.GetContext(ctx, &notif, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	filter := `WHERE recipient_id = $1`
	if unreadOnly {
		filter += ` AND is_read = false`
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications `+filter, recipientID); err != nil {
		return nil, 0, err
	}

	var notifications []domain.Notification
	query := `
		SELECT * FROM notifications ` + filter + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &notifications, query, recipientID, params.PageSize, params.Offset())
	return notifications, total, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE notification_id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE recipient_id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, recipientID)
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notifications WHERE notification_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, recipientID)
	return count, err
}
