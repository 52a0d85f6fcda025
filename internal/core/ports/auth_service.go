package ports

import (
	"context"

	"github.com/trailhead/campground-api/internal/core/domain"
)

// AuthService covers registration, login and logout.
type AuthService interface {
	// Register creates a role=user account.
	Register(ctx context.Context, username, email, password, telephone string) (*domain.User, error)
	// RegisterAdmin is the distinct admin entry point; there is no
	// user-to-admin promotion flow.
	RegisterAdmin(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login returns a signed session token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the token id when a deny-list is configured; otherwise
	// it is a no-op and the token stays valid until natural expiry.
	Logout(ctx context.Context, claims TokenClaims) error
}
