package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/lesson-api/internal/api/metrics"
	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users  ports.UserRepository
	ref    *Referential
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	ref *Referential,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, ref: ref, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a USER account. Phone uniqueness is checked before the
// password is hashed.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if err := s.ref.PhoneAvailable(ctx, in.Phone, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.UsersRegisteredTotal.Inc()
	s.log.Info().Int64("user_id", user.ID).Msg("user registered")
	return &ports.AuthResult{User: user, Token: token}, nil
}

// Login verifies phone and password. An unknown phone is NotFound, a wrong
// password is Unauthenticated.
func (s *AuthService) Login(ctx context.Context, phone, password string) (*ports.AuthResult, error) {
	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("phone", phone).Msg("login for unknown phone")
		}
		return nil, err
	}

	if s.hasher.Compare(user.PasswordHash, password) != nil {
		s.log.Warn().Int64("user_id", user.ID).Msg("login with invalid credentials")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return &ports.AuthResult{User: user, Token: token}, nil
}
