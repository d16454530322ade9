package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mercadoscout/pkg/apierr"
)

// Claims are the payload of an issued bearer token
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies stateless HS256 bearer tokens. Tokens are
// never persisted; validity is determined purely by signature and timestamp,
// so there is no revocation before natural expiry.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a token manager with the given signing secret and TTL
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the user, valid for the configured TTL
func (m *TokenManager) Issue(userID, email string) (string, error) {
	now := m.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", apierr.Wrap(apierr.KindInternal, "token signing failed", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the subject user id. Expired
// tokens are reported distinctly from invalid ones.
func (m *TokenManager) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apierr.Wrap(apierr.KindTokenExpired, "token has expired", err)
		}
		return "", apierr.Wrap(apierr.KindTokenInvalid, "token could not be verified", err)
	}

	if claims.Subject == "" {
		return "", apierr.New(apierr.KindTokenInvalid, "token carries no subject")
	}
	return claims.Subject, nil
}
