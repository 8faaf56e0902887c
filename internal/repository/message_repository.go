package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"talentboard/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	GetConversation(ctx context.Context, userID, otherID uuid.UUID) ([]domain.Message, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkConversationAsRead(ctx context.Context, receiverID, senderID uuid.UUID) error
	CountUnread(ctx context.Context, receiverID uuid.UUID) (int64, error)
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (message_id, sender_id, receiver_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING seq, sent_at`

	return r.db.QueryRowxContext(ctx, query,
		msg.ID, msg.SenderID, msg.ReceiverID, msg.Content,
	).Scan(&msg.Seq, &msg.SentAt)
}

func (r *messageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	var msg domain.Message
	query := `SELECT * FROM messages WHERE message_id = $1`

	err := r.db.GetContext(ctx, &msg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetConversation returns both directions of the thread, oldest first.
// seq breaks sent_at ties so the order is never ambiguous.
func (r *messageRepository) GetConversation(ctx context.Context, userID, otherID uuid.UUID) ([]domain.Message, error) {
	var messages []domain.Message
	query := `
		SELECT * FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY sent_at ASC, seq ASC`

	err := r.db.SelectContext(ctx, &messages, query, userID, otherID)
	return messages, err
}

// ListConversations derives one row per counterpart from the flat message
// log: the latest message (by seq, consistent with the tie-break rule) and
// the number of messages the caller has not read yet.
func (r *messageRepository) ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	query := `
		SELECT p.partner_id,
		       u.full_name AS partner_name,
		       m.content AS last_message,
		       m.sent_at AS last_message_time,
		       p.unread_count
		FROM (
			SELECT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS partner_id,
			       MAX(seq) AS last_seq,
			       COUNT(*) FILTER (WHERE receiver_id = $1 AND is_read = false) AS unread_count
			FROM messages
			WHERE sender_id = $1 OR receiver_id = $1
			GROUP BY 1
		) p
		JOIN messages m ON m.seq = p.last_seq
		JOIN users u ON u.user_id = p.partner_id
		ORDER BY m.sent_at DESC, m.seq DESC`

	err := r.db.SelectContext(ctx, &conversations, query, userID)
	return conversations, err
}

func (r *messageRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE messages SET is_read = true, read_at = NOW() WHERE message_id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *messageRepository) MarkConversationAsRead(ctx context.Context, receiverID, senderID uuid.UUID) error {
	query := `
		UPDATE messages SET is_read = true, read_at = NOW()
		WHERE receiver_id = $1 AND sender_id = $2 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, receiverID, senderID)
	return err
}

func (r *messageRepository) CountUnread(ctx context.Context, receiverID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, receiverID)
	return count, err
}
