package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnhub/lesson-api/internal/core/domain"
)

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestManager_IssueVerifyRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	raw, err := m.Issue(&domain.User{ID: 42, Role: domain.RoleAdmin})
	require.NoError(t, err)

	id, err := m.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id.UserID)
	assert.Equal(t, domain.RoleAdmin, id.Role)
	assert.True(t, id.IsAdmin())
	assert.WithinDuration(t, time.Now().Add(time.Hour), id.ExpiresAt, 5*time.Second)
}

func TestManager_VerifyLegacyClaims(t *testing.T) {
	m := NewManager("secret", time.Hour)
	raw := sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
		"id":   7,
		"role": "admin",
		"exp":  time.Now().Add(time.Minute).Unix(),
	})

	id, err := m.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.UserID)
	assert.Equal(t, domain.RoleAdmin, id.Role)
}

func TestManager_VerifyRejects(t *testing.T) {
	m := NewManager("secret", time.Hour)
	future := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "garbage", raw: "not-a-token"},
		{name: "wrong secret", raw: sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"userId": 1, "role": "USER", "exp": future})},
		{name: "wrong algorithm", raw: sign(t, jwt.SigningMethodHS512, []byte("secret"), jwt.MapClaims{"userId": 1, "role": "USER", "exp": future})},
		{name: "expired", raw: sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"userId": 1, "role": "USER", "exp": time.Now().Add(-time.Minute).Unix()})},
		{name: "no expiry", raw: sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"userId": 1, "role": "USER"})},
		{name: "no user id", raw: sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"role": "USER", "exp": future})},
		{name: "unknown role", raw: sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"userId": 1, "role": "root", "exp": future})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.raw)
			require.Error(t, err)
			assert.Equal(t, domain.KindUnauthenticated, domain.AsAppError(err).Kind)
		})
	}
}
