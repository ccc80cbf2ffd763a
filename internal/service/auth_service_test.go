package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"careflow/internal/config"
	"careflow/internal/domain"
	"careflow/internal/service"
	"careflow/mocks"
)

func authFixture(t *testing.T) (*mocks.MockUserRepo, service.AuthService, *domain.User) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse-battery"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "reviewer@clinic.example",
		PasswordHash: string(hash),
		FullName:     "Pat Reviewer",
		Role:         domain.RoleReviewer,
		IsActive:     true,
	}

	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "careflow-test",
	})
	return userRepo, svc, user
}

func TestAuth_LoginSuccess(t *testing.T) {
	userRepo, svc, user := authFixture(t)
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.RoleReviewer, claims.Role)
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	userRepo, svc, user := authFixture(t)
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "wrong-password-entirely",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuth_LoginUnknownEmail(t *testing.T) {
	userRepo, svc, _ := authFixture(t)
	userRepo.On("GetByEmail", mock.Anything, "nobody@clinic.example").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@clinic.example",
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuth_LoginInactiveUser(t *testing.T) {
	userRepo, svc, user := authFixture(t)
	user.IsActive = false
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuth_RefreshTokenRoundTrip(t *testing.T) {
	userRepo, svc, user := authFixture(t)
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuth_RefreshTokenRejectsAccessToken(t *testing.T) {
	userRepo, svc, user := authFixture(t)
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	// An access token must not pass for a refresh token, and vice versa.
	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestAuth_ValidateTokenRejectsTampered(t *testing.T) {
	userRepo, svc, user := authFixture(t)
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken + "x")
	assert.Error(t, err)
}
