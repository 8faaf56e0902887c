package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"talentboard/internal/config"
	"talentboard/internal/domain"
	"talentboard/internal/mocks"
	"talentboard/internal/service/auth"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: time.Hour,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Job Seeker Is Active With Token", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())

		userRepo.On("ExistsByEmail", ctx, "seeker@test.io").Return(false, nil).Once()
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleJobSeeker && u.IsActive
		})).Return(nil).Once()

		user, token, err := svc.Register(ctx, domain.CreateUserInput{
			Email:    "seeker@test.io",
			Password: "s3cret-pass",
			FullName: "Sam Seeker",
			Role:     "job_seeker",
		})

		assert.NoError(t, err)
		assert.True(t, user.IsActive)
		assert.NotNil(t, token)
		assert.NotEmpty(t, token.AccessToken)
	})

	t.Run("Employer Starts Inactive Without Token", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())

		userRepo.On("ExistsByEmail", ctx, "hr@acme.io").Return(false, nil).Once()
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleEmployer && !u.IsActive
		})).Return(nil).Once()

		user, token, err := svc.Register(ctx, domain.CreateUserInput{
			Email:    "hr@acme.io",
			Password: "s3cret-pass",
			FullName: "Acme HR",
			Role:     "employer",
		})

		assert.NoError(t, err)
		assert.False(t, user.IsActive)
		assert.Nil(t, token)
	})

	t.Run("Cannot Register As Admin", func(t *testing.T) {
		svc := auth.NewService(new(mocks.UserRepository), testConfig())

		_, _, err := svc.Register(ctx, domain.CreateUserInput{
			Email:    "root@test.io",
			Password: "s3cret-pass",
			FullName: "Root",
			Role:     "admin",
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())

		userRepo.On("ExistsByEmail", ctx, "seeker@test.io").Return(true, nil).Once()

		_, _, err := svc.Register(ctx, domain.CreateUserInput{
			Email:    "seeker@test.io",
			Password: "s3cret-pass",
			FullName: "Sam Seeker",
			Role:     "job_seeker",
		})

		assert.ErrorIs(t, err, auth.ErrEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	activeUser := &domain.User{
		ID:           uuid.New(),
		Email:        "seeker@test.io",
		PasswordHash: string(hash),
		Role:         domain.RoleJobSeeker,
		IsActive:     true,
	}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())

		userRepo.On("GetByEmail", ctx, activeUser.Email).Return(activeUser, nil).Once()

		user, token, err := svc.Login(ctx, domain.LoginInput{Email: activeUser.Email, Password: "s3cret-pass"})

		assert.NoError(t, err)
		assert.Equal(t, activeUser.ID, user.ID)
		assert.NotEmpty(t, token.AccessToken)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())

		userRepo.On("GetByEmail", ctx, activeUser.Email).Return(activeUser, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: activeUser.Email, Password: "wrong"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())

		userRepo.On("GetByEmail", ctx, "ghost@test.io").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "ghost@test.io", Password: "s3cret-pass"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Inactive Employer", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())

		pending := &domain.User{
			ID:           uuid.New(),
			Email:        "hr@acme.io",
			PasswordHash: string(hash),
			Role:         domain.RoleEmployer,
			IsActive:     false,
		}
		userRepo.On("GetByEmail", ctx, pending.Email).Return(pending, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: pending.Email, Password: "s3cret-pass"})

		assert.ErrorIs(t, err, auth.ErrAccountInactive)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(mocks.UserRepository)
	svc := auth.NewService(userRepo, testConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "seeker@test.io",
		PasswordHash: string(hash),
		Role:         domain.RoleJobSeeker,
		IsActive:     true,
	}
	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

	_, token, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "s3cret-pass"})
	require.NoError(t, err)

	t.Run("Round Trip", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(token.AccessToken)

		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, domain.RoleJobSeeker, claims.Role)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken("not.a.token")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		other := auth.NewService(userRepo, &config.Config{JWTSecret: "different", JWTAccessExpiry: time.Hour})

		claims, err := other.ValidateAccessToken(token.AccessToken)

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, claims)
	})
}
