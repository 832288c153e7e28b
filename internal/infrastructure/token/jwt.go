// Package token issues and verifies the HS256 bearer tokens that carry a
// user's identity between requests.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/learnhub/lesson-api/internal/core/domain"
)

var (
	errInvalidToken  = domain.Unauthenticated("invalid or expired token")
	errMissingClaims = domain.Unauthenticated("token missing identity claims")
)

// Manager implements ports.TokenIssuer and ports.TokenVerifier.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs {userId, role, iat, exp} for user.
func (m *Manager) Issue(user *domain.User) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"userId": user.ID,
		"role":   string(user.Role),
		"iat":    now.Unix(),
		"exp":    now.Add(m.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry, then normalizes the claim
// set. Tokens that carry "id" instead of "userId" are accepted; role casing
// is normalized to upper case.
func (m *Manager) Verify(raw string) (domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims,
		func(token *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tkn.Valid {
		if err == nil {
			err = errors.New("token not valid")
		}
		return domain.Identity{}, &domain.AppError{Kind: domain.KindUnauthenticated, Message: errInvalidToken.Message, Err: err}
	}

	userID, ok := numericClaim(claims, "userId")
	if !ok {
		userID, ok = numericClaim(claims, "id")
	}
	if !ok || userID <= 0 {
		return domain.Identity{}, errMissingClaims
	}

	roleStr, _ := claims["role"].(string)
	role, ok := domain.ParseRole(roleStr)
	if !ok {
		return domain.Identity{}, errMissingClaims
	}

	id := domain.Identity{UserID: userID, Role: role}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		id.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}
	return id, nil
}

// numericClaim reads an integer claim. JSON numbers decode as float64.
func numericClaim(claims jwt.MapClaims, key string) (int64, bool) {
	switch v := claims[key].(type) {
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}
