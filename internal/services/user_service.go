package services

import (
	"context"
	"errors"
	"strings"

	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService manages API user accounts
type UserService struct {
	repo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, query *repository.ListQuery) ([]models.User, int64, error) {
	return s.repo.List(ctx, query)
}

// Create registers a new user with a bcrypt-hashed password
func (s *UserService) Create(ctx context.Context, user *models.User, password string) error {
	if user.FullName == "" || user.Email == "" {
		return errors.New("nombre y correo son requeridos")
	}
	if len(password) < 8 {
		return errors.New("la contraseña debe tener al menos 8 caracteres")
	}

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if _, err := s.repo.FindByEmail(ctx, user.Email); err == nil {
		return ErrDuplicate
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.EncryptedPassword = hash

	return s.repo.Create(ctx, user)
}

// Update modifies profile fields; role and password have dedicated paths
func (s *UserService) Update(ctx context.Context, user *models.User) error {
	existing, err := s.repo.FindByID(ctx, user.ID)
	if err != nil {
		return ErrNotFound
	}

	if user.FullName != "" {
		existing.FullName = user.FullName
	}
	if user.Phone != nil {
		existing.Phone = user.Phone
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return err
	}
	*user = *existing
	return nil
}

// ChangePassword verifies the current password before setting a new one
func (s *UserService) ChangePassword(ctx context.Context, id uint, current, newPassword string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.EncryptedPassword), []byte(current)); err != nil {
		return ErrInvalidPassword
	}
	if len(newPassword) < 8 {
		return errors.New("la contraseña debe tener al menos 8 caracteres")
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.EncryptedPassword = hash
	return s.repo.Update(ctx, user)
}

// ToggleStatus flips a user between active and inactive
func (s *UserService) ToggleStatus(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if user.Status == models.StatusActive {
		user.Status = models.StatusInactive
	} else {
		user.Status = models.StatusActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
