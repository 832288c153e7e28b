package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

type userService struct {
	users  ports.UserRepository
	ref    *Referential
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewUserService(users ports.UserRepository, ref *Referential, hasher ports.PasswordHasher, log zerolog.Logger) ports.UserService {
	return &userService{users: users, ref: ref, hasher: hasher, log: log}
}

// UpdateProfile changes the caller's own name and/or password. A password
// change needs the current password; it is checked against the stored hash
// before anything is written.
func (s *userService) UpdateProfile(ctx context.Context, userID int64, in ports.UpdateProfileInput) (*domain.User, error) {
	if in.NewPassword != "" && in.CurrentPassword == "" {
		return nil, domain.Invalid("validation failed", domain.FieldViolation{
			Field:  "currentPassword",
			Reason: "is required when newPassword is set",
		})
	}

	user, err := s.ref.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}

	var upd ports.UserUpdate
	if in.Name != "" {
		upd.Name = &in.Name
	}
	if in.NewPassword != "" {
		if s.hasher.Compare(user.PasswordHash, in.CurrentPassword) != nil {
			s.log.Warn().Int64("user_id", userID).Msg("profile update with wrong current password")
			return nil, domain.Invalid("current password is incorrect", domain.FieldViolation{
				Field:  "currentPassword",
				Reason: "does not match",
			})
		}
		hash, err := s.hasher.Hash(in.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		upd.PasswordHash = &hash
	}

	if upd.Name == nil && upd.PasswordHash == nil {
		return user, nil
	}

	updated, err := s.users.Update(ctx, userID, upd)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("user_id", userID).
		Bool("password_changed", upd.PasswordHash != nil).
		Msg("profile updated")
	return updated, nil
}
