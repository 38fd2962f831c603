package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/smartadmin/user-api/internal/core/credentials"
	"github.com/smartadmin/user-api/internal/core/domain"
	"github.com/smartadmin/user-api/internal/core/ports"
)

const qrImageSize = 256

// AuthService implements login, profile lookup, and the QR flow.
type AuthService struct {
	repo   ports.UserRepository
	hasher *credentials.Hasher
	tokens *credentials.TokenManager
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher *credentials.Hasher, tokens *credentials.TokenManager, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, logger: logger}
}

// Login verifies the document/password pair and issues a standard token
// embedding the user's id and role.
func (s *AuthService) Login(ctx context.Context, document, password string) (*ports.LoginResult, error) {
	user, err := s.repo.FindByID(ctx, document)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	return &ports.LoginResult{Token: token, User: user.Sanitized()}, nil
}

// LoggedUser returns the profile of the authenticated caller.
func (s *AuthService) LoggedUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// GenerateQR issues a short-lived token for the actor and renders it as a
// scannable PNG. The short ttl bounds the redemption window of the
// issue-now/redeem-later flow.
func (s *AuthService) GenerateQR(ctx context.Context, actor ports.Actor) (*ports.QRCode, error) {
	if _, err := s.repo.FindByID(ctx, actor.ID); err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueShortLived(actor.ID, actor.Role)
	if err != nil {
		return nil, fmt.Errorf("generate qr: %w", err)
	}

	png, err := qrcode.Encode(token, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("generate qr: encode image: %w", err)
	}

	s.logger.Info().Str("user_id", actor.ID).Msg("qr token generated")

	return &ports.QRCode{
		Token: token,
		Image: base64.StdEncoding.EncodeToString(png),
	}, nil
}

// ValidateQR redeems a QR token: it verifies signature and expiry, then
// re-checks that the subject still exists before handing back the identity.
func (s *AuthService) ValidateQR(ctx context.Context, token string) (*ports.QRIdentity, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, claims.Subject); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// The subject vanished since issuance — invalid, not 404.
			return nil, credentials.ErrTokenInvalid
		}
		return nil, err
	}

	return &ports.QRIdentity{UserID: claims.Subject, Role: claims.Role}, nil
}
