package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"user_id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"full_name" db:"full_name"`
	Role         UserRole   `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Role     string `json:"role" validate:"required,oneof=job_seeker employer"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleJobSeeker UserRole = "job_seeker"
	RoleEmployer  UserRole = "employer"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole accepts both the stored spelling ("job_seeker") and the
// API spelling ("JobSeeker"), case-insensitively.
func ParseRole(s string) (UserRole, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	switch normalized {
	case "jobseeker":
		return RoleJobSeeker, true
	case "employer":
		return RoleEmployer, true
	case "admin":
		return RoleAdmin, true
	default:
		return "", false
	}
}

func (u *User) HasRole(role UserRole) bool {
	return u.Role == role
}
