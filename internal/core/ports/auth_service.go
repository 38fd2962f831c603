package ports

import (
	"context"

	"github.com/smartadmin/user-api/internal/core/domain"
)

// LoginResult is the outcome of a successful credential check.
type LoginResult struct {
	Token string
	User  *domain.User // password hash stripped
}

// QRCode is an ephemeral login artifact: a short-lived token plus its
// scannable rendering.
type QRCode struct {
	Token string
	Image string // base64-encoded PNG
}

// QRIdentity is the identity redeemed from a valid QR token.
type QRIdentity struct {
	UserID string
	Role   domain.Role
}

// AuthService implements login, profile lookup, and the two-step QR flow
// (issue now, redeem later, bounded by the short token ttl).
type AuthService interface {
	Login(ctx context.Context, document, password string) (*LoginResult, error)
	LoggedUser(ctx context.Context, userID string) (*domain.User, error)
	GenerateQR(ctx context.Context, actor Actor) (*QRCode, error)
	ValidateQR(ctx context.Context, token string) (*QRIdentity, error)
}
