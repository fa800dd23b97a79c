package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/ovofarm/backoffice/internal/apperr"
	"github.com/ovofarm/backoffice/internal/models"
)

// memoryUserStorage is a map-backed UserStorage for tests.
type memoryUserStorage struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User
}

func newMemoryUserStorage() *memoryUserStorage {
	return &memoryUserStorage{
		byID:    map[string]*models.User{},
		byEmail: map[string]*models.User{},
	}
}

func (m *memoryUserStorage) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return apperr.Conflict("user", user.Email)
	}
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUserStorage) GetUser(_ context.Context, id string) (*models.User, error) {
	return m.byID[id], nil
}

func (m *memoryUserStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.byEmail[email], nil
}

func TestPasswordAuthenticator(t *testing.T) {
	storage := newMemoryUserStorage()
	a := NewPasswordAuthenticator(storage)
	ctx := context.Background()

	t.Run("register hashes the password", func(t *testing.T) {
		user, err := a.Register(ctx, "alice@example.com", "Alice", "correct-horse", models.RoleCustomer)
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.PasswordHash == "correct-horse" || user.PasswordHash == "" {
			t.Error("Expected password to be stored hashed")
		}
		if user.Role != models.RoleCustomer {
			t.Errorf("Role = %s, want CUSTOMER", user.Role)
		}
	})

	t.Run("weak password rejected", func(t *testing.T) {
		_, err := a.Register(ctx, "short@example.com", "Short", "short", models.RoleCustomer)
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("Expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := a.Register(ctx, "alice@example.com", "Alice2", "correct-horse", models.RoleCustomer)
		if !apperr.IsConflict(err) {
			t.Errorf("Expected conflict, got %v", err)
		}
	})

	t.Run("authenticate with right password", func(t *testing.T) {
		user, err := a.Authenticate(ctx, "alice@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.Email != "alice@example.com" {
			t.Errorf("Got user %+v", user)
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "alice@example.com", "battery-staple")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "nobody@example.com", "whatever")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})
}
