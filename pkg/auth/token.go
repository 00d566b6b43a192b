// Package auth issues and verifies the bearer tokens that identify storefront
// users, and provides the HTTP middleware that puts the verified identity on
// the request context.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pixelmart/storefront/pkg/apperror"
)

// Identity is the authenticated actor carried through request contexts.
type Identity struct {
	UserID string
	Email  string
	Admin  bool
}

type claims struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), ttl: 7 * 24 * time.Hour}
}

func (m *Manager) Issue(id Identity) (string, error) {
	now := time.Now()
	c := claims{
		Email: id.Email,
		Admin: id.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

func (m *Manager) Verify(token string) (Identity, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperror.Newf(apperror.CodeUnauthorized, "unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, apperror.Wrap(err, apperror.CodeUnauthorized, "invalid or expired token")
	}
	return Identity{UserID: c.Subject, Email: c.Email, Admin: c.Admin}, nil
}
