package ports

import (
	"context"

	"github.com/learnhub/lesson-api/internal/core/domain"
)

// LessonGenerator turns a topic prompt into lesson text. Calls are slow
// and may fail.
type LessonGenerator interface {
	Generate(ctx context.Context, promptText string) (string, error)
}

// TokenIssuer signs identity tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier checks a bearer token and extracts its identity claims.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// PasswordHasher hashes and compares user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
