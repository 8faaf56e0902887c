package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"talentboard/internal/config"
	"talentboard/internal/domain"
	"talentboard/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountInactive    = errors.New("account is not active")
)

// Service binds request identity. Account management beyond register/login
// belongs to the surrounding platform; the core only needs to resolve a
// token to a concrete user and issue tokens for its own clients.
type Service interface {
	Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, *domain.AccessToken, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.AccessToken, error)
	ValidateAccessToken(token string) (*Claims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type Claims struct {
	UserID uuid.UUID       `json:"user_id"`
	Email  string          `json:"email"`
	Role   domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Service {
	return &service{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *service) Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, *domain.AccessToken, error) {
	role, ok := domain.ParseRole(input.Role)
	if !ok || role == domain.RoleAdmin {
		return nil, nil, domain.ValidationError("unknown role %q", input.Role)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FullName:     input.FullName,
		Role:         role,
		// Employers start inactive and are activated by the admin
		// approval event. Job seekers are active immediately.
		IsActive: role != domain.RoleEmployer,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	if !user.IsActive {
		return user, nil, nil
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}

	return user, token, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.AccessToken, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, ErrAccountInactive
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}

	return user, token, nil
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *service) generateAccessToken(user *domain.User) (*domain.AccessToken, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.JWTAccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &domain.AccessToken{
		AccessToken: signed,
		ExpiresIn:   int64(s.cfg.JWTAccessExpiry.Seconds()),
	}, nil
}
