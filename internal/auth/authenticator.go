package auth

import (
	"context"

	"github.com/ovofarm/backoffice/internal/models"
)

// Authenticator defines the interface for authentication
// implementations, allowing password auth to be swapped for other
// methods without changing the HTTP layer.
type Authenticator interface {
	// Register creates a new user account with the given email,
	// credential and role tag.
	Register(ctx context.Context, email, displayName, credential string, role models.Role) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user
	// if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the
	// implementation's requirements.
	ValidateCredential(credential string) error
}
