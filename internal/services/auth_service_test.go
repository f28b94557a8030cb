package services

import (
	"context"
	"testing"
	"time"

	"github.com/casaledger/casaledger-api/internal/config"
	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	repository.UserRepository
	mockFindByEmail func(ctx context.Context, email string) (*models.User, error)
	mockFindByID    func(ctx context.Context, id uint) (*models.User, error)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.mockFindByEmail(ctx, email)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

type mockRefreshTokenRepo struct {
	repository.RefreshTokenRepository
	mockFindByToken func(ctx context.Context, token string) (*models.RefreshToken, error)
	deleted         []string
	created         []*models.RefreshToken
}

func (m *mockRefreshTokenRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	return m.mockFindByToken(ctx, token)
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, rt *models.RefreshToken) error {
	m.created = append(m.created, rt)
	return nil
}

func (m *mockRefreshTokenRepo) Delete(ctx context.Context, token string) error {
	m.deleted = append(m.deleted, token)
	return nil
}

func authTestConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1}
}

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := HashPassword("secreto123")
	require.NoError(t, err)

	userRepo := &mockUserRepo{}
	rtRepo := &mockRefreshTokenRepo{}
	actRepo := &mockActivityRepository{}
	service := NewAuthService(userRepo, rtRepo, NewActivityService(actRepo), authTestConfig())

	userRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{
			ID:                1,
			Email:             email,
			EncryptedPassword: hash,
			Status:            models.StatusActive,
			Role:              models.RoleAccountant,
		}, nil
	}

	result, err := service.Login(context.Background(), "conta@example.com", "secreto123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	require.Len(t, rtRepo.created, 1)

	// Login leaves an activity trail
	require.Len(t, actRepo.entries, 1)
	assert.Equal(t, models.ActionUserLogin, actRepo.entries[0].Action)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := HashPassword("secreto123")
	require.NoError(t, err)

	userRepo := &mockUserRepo{}
	service := NewAuthService(userRepo, &mockRefreshTokenRepo{}, nil, authTestConfig())

	userRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{Email: email, EncryptedPassword: hash, Status: models.StatusActive}, nil
	}

	result, err := service.Login(context.Background(), "conta@example.com", "incorrecta")
	assert.Nil(t, result)
	assert.EqualError(t, err, "credenciales inválidas")
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	userRepo := &mockUserRepo{}
	service := NewAuthService(userRepo, &mockRefreshTokenRepo{}, nil, authTestConfig())

	userRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{Email: email, Status: models.StatusInactive}, nil
	}

	result, err := service.Login(context.Background(), "inactive@example.com", "password")
	assert.Nil(t, result)
	assert.EqualError(t, err, "cuenta inactiva")
}

func TestAuthService_RefreshToken_RotatesToken(t *testing.T) {
	hash, err := HashPassword("secreto123")
	require.NoError(t, err)

	userRepo := &mockUserRepo{}
	rtRepo := &mockRefreshTokenRepo{}
	service := NewAuthService(userRepo, rtRepo, nil, authTestConfig())

	future := time.Now().Add(time.Hour)
	rtRepo.mockFindByToken = func(ctx context.Context, token string) (*models.RefreshToken, error) {
		return &models.RefreshToken{UserID: 1, Token: token, ExpiresAt: &future}, nil
	}
	userRepo.mockFindByID = func(ctx context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, EncryptedPassword: hash, Status: models.StatusActive}, nil
	}

	result, err := service.RefreshToken(context.Background(), "old-token")
	require.NoError(t, err)
	assert.NotEqual(t, "old-token", result.RefreshToken)

	// The old token is gone and a new one stored
	assert.Contains(t, rtRepo.deleted, "old-token")
	require.Len(t, rtRepo.created, 1)
}

func TestAuthService_RefreshToken_Expired(t *testing.T) {
	rtRepo := &mockRefreshTokenRepo{}
	service := NewAuthService(&mockUserRepo{}, rtRepo, nil, authTestConfig())

	past := time.Now().Add(-time.Hour)
	rtRepo.mockFindByToken = func(ctx context.Context, token string) (*models.RefreshToken, error) {
		return &models.RefreshToken{UserID: 1, Token: token, ExpiresAt: &past}, nil
	}

	result, err := service.RefreshToken(context.Background(), "stale-token")
	assert.Nil(t, result)
	assert.EqualError(t, err, "token expirado")
	assert.Contains(t, rtRepo.deleted, "stale-token")
}
