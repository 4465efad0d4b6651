package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tenantkit/tenantkit/internal/models"
)

// Claims is the token claim set. The embedded identity fields are the sole
// source of truth for a request: role or tenant changes only take effect on
// the next token issuance.
type Claims struct {
	jwt.RegisteredClaims
	ID    string   `json:"id"`
	OrgID string   `json:"orgId"`
	Roles []string `json:"roles"`
}

// TokenManager issues and verifies bearer tokens. The signing secret is
// injected once at construction and never re-read.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager with the given HMAC secret and
// token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token carrying the user's identity, home tenant and roles.
func (m *TokenManager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		ID:    user.ID,
		OrgID: user.OrgID,
		Roles: user.Roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Authenticate verifies an Authorization header of the shape
// "Bearer <token>" and recovers the caller context from its claims. Any
// other header shape, a bad signature or an expired token yields
// (nil, false); converting that into a hard failure is the caller's job.
func (m *TokenManager) Authenticate(header string) (*Context, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		log.Debug().Err(err).Msg("token verification failed")
		return nil, false
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, false
	}

	return &Context{
		ID:    claims.ID,
		OrgID: claims.OrgID,
		Roles: claims.Roles,
	}, true
}
