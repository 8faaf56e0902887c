package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"talentboard/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListActive(ctx context.Context) ([]domain.User, error)
	ListActiveByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, email, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Role, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE user_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *userRepository) ListActive(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	query := `SELECT * FROM users WHERE is_active = true AND deleted_at IS NULL`
	err := r.db.SelectContext(ctx, &users, query)
	return users, err
}

func (r *userRepository) ListActiveByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	var users []domain.User
	query := `SELECT * FROM users WHERE role = $1 AND is_active = true AND deleted_at IS NULL`
	err := r.db.SelectContext(ctx, &users, query, role)
	return users, err
}

func (r *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `
		UPDATE users
		SET is_active = $2, updated_at = NOW()
		WHERE user_id = $1 AND deleted_at IS NULL
		RETURNING user_id`

	var returned uuid.UUID
	err := r.db.QueryRowxContext(ctx, query, id, active).Scan(&returned)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError("user %s", id)
	}
	return err
}
