package auth

import (
	"context"

	"github.com/VictorWong123/shopnsplit/internal/models"
)

// Authenticator is the identity collaborator for the rest of the app.
// Receipt participants are plain display-name strings and never touch
// this interface; only saved-receipt ownership needs an account. The
// abstraction allows swapping auth methods (password, OAuth, passkeys)
// without changing the service layer.
type Authenticator interface {
	// Register creates a new account with the given email and credential.
	// The credential format depends on the implementation.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks whether the credential meets the
	// implementation's requirements before any account is touched.
	ValidateCredential(credential string) error
}
