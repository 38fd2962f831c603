package credentials

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smartadmin/user-api/internal/core/domain"
)

var ErrTokenInvalid = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")

// DefaultShortLivedTTL bounds the redemption window of ephemeral tokens
// (QR login). It must stay strictly shorter than any finite standard TTL.
const DefaultShortLivedTTL = 10 * time.Minute

// TTL is a validated token lifetime. NoExpiry means issued tokens carry no
// exp claim at all, for deployments that manage sessions externally.
type TTL struct {
	NoExpiry bool
	Duration time.Duration
}

// ParseTTL converts a configuration string into a TTL. Accepted forms are a
// Go duration ("24h", "30m") or the literal "none".
func ParseTTL(s string) (TTL, error) {
	if strings.EqualFold(strings.TrimSpace(s), "none") {
		return TTL{NoExpiry: true}, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return TTL{}, fmt.Errorf("token ttl %q: want a duration or \"none\": %w", s, err)
	}
	if d <= 0 {
		return TTL{}, fmt.Errorf("token ttl %q: must be positive", s)
	}
	return TTL{Duration: d}, nil
}

// Claims is the verified identity carried by a token. The subject is the
// bare user id; the role travels as a separate claim, never nested inside
// the subject.
type Claims struct {
	Subject   string
	Role      domain.Role
	ExpiresAt time.Time // zero when the token carries no expiry
}

// TokenManager signs and verifies HS256 bearer tokens.
type TokenManager struct {
	secret      []byte
	standardTTL TTL
	shortTTL    time.Duration
}

// NewTokenManager builds a TokenManager. A non-positive shortLived falls
// back to DefaultShortLivedTTL.
func NewTokenManager(secret string, standard TTL, shortLived time.Duration) *TokenManager {
	if shortLived <= 0 {
		shortLived = DefaultShortLivedTTL
	}
	return &TokenManager{
		secret:      []byte(secret),
		standardTTL: standard,
		shortTTL:    shortLived,
	}
}

// Issue signs a standard session token for the given identity.
func (m *TokenManager) Issue(id string, role domain.Role) (string, error) {
	return m.sign(id, role, m.standardTTL)
}

// IssueShortLived signs an ephemeral token with the bounded short TTL,
// carrying the same subject and role claims as a standard token so
// downstream authorization is unaffected by the token type.
func (m *TokenManager) IssueShortLived(id string, role domain.Role) (string, error) {
	return m.sign(id, role, TTL{Duration: m.shortTTL})
}

func (m *TokenManager) sign(id string, role domain.Role, ttl TTL) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  id,
		"role": string(role),
		"iat":  now.Unix(),
	}
	if !ttl.NoExpiry {
		claims["exp"] = now.Add(ttl.Duration).Unix()
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims. All
// failure modes map to ErrTokenExpired or ErrTokenInvalid — never a panic or
// a raw library error.
func (m *TokenManager) Verify(token string) (Claims, error) {
	raw := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}

	sub, _ := raw["sub"].(string)
	role, _ := raw["role"].(string)
	if sub == "" || !domain.Role(role).Valid() {
		return Claims{}, ErrTokenInvalid
	}

	claims := Claims{Subject: sub, Role: domain.Role(role)}
	if exp, ok := raw["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return claims, nil
}
