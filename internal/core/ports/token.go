package ports

import (
	"context"
	"time"
)

// TokenClaims is the verified identity carried by a session token.
type TokenClaims struct {
	UserID    string
	Role      string
	TokenID   string // jti, used by the deny-list
	ExpiresAt time.Time
}

// TokenService issues and verifies signed session tokens. Tokens are
// self-contained; verification needs no store lookup.
type TokenService interface {
	Issue(userID, role string) (string, error)
	Verify(token string) (*TokenClaims, error)
}

// TokenDenylist records revoked token ids until their natural expiry.
// Logout uses it so a discarded token stops working server-side as well.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
