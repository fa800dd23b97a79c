package service

import (
	"context"
	"log/slog"

	"github.com/ovofarm/backoffice/internal/apperr"
	"github.com/ovofarm/backoffice/internal/models"
	"github.com/ovofarm/backoffice/internal/storage"
)

// UserService exposes user lookup and the explicit cascade delete.
// Registration and login live in the auth package.
type UserService struct {
	store storage.Store
}

// NewUserService creates a UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user", id)
	}
	return user, nil
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}

// DeleteUser removes a user and everything hanging off it: the user's
// payments, the payments on the user's bills, those bills, the user's
// orders with their lines, and finally the user row. The store runs the
// whole cascade in one transaction, child rows first.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	if err := s.store.DeleteUserCascade(ctx, id); err != nil {
		slog.Error("DeleteUser cascade failed", "user_id", id, "error", err)
		return err
	}

	slog.Info("User deleted", "user_id", id)
	return nil
}
