package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type adminService struct {
	users   ports.UserRepository
	prompts ports.PromptRepository
	ref     *Referential
	log     zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	prompts ports.PromptRepository,
	ref *Referential,
	log zerolog.Logger,
) ports.AdminService {
	return &adminService{users: users, prompts: prompts, ref: ref, log: log}
}

// ListUsers returns one page of users. TotalCount counts every match of
// the role and search filters, not just the returned page.
func (s *adminService) ListUsers(ctx context.Context, filter ports.UserFilter) (*ports.ListUsersResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	switch {
	case filter.Limit < 1:
		filter.Limit = DefaultPageSize
	case filter.Limit > MaxPageSize:
		filter.Limit = MaxPageSize
	}

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*domain.User{}
	}

	return &ports.ListUsersResult{
		Users:      users,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
	}, nil
}

func (s *adminService) ListUserPrompts(ctx context.Context, userID int64) ([]*domain.Prompt, error) {
	if _, err := s.ref.UserExists(ctx, userID); err != nil {
		return nil, err
	}
	prompts, err := s.prompts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.ref.AttachTopics(ctx, prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// UpdateUser applies an administrator's change. A new phone must not
// belong to another account.
func (s *adminService) UpdateUser(ctx context.Context, userID int64, in ports.AdminUpdateInput) (*domain.User, error) {
	user, err := s.ref.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Phone != nil && *in.Phone != user.Phone {
		if err := s.ref.PhoneAvailable(ctx, *in.Phone, userID); err != nil {
			return nil, err
		}
	}
	if in.Name == nil && in.Phone == nil && in.Role == nil {
		return user, nil
	}

	updated, err := s.users.Update(ctx, userID, ports.UserUpdate{
		Name:  in.Name,
		Phone: in.Phone,
		Role:  in.Role,
	})
	if err != nil {
		return nil, err
	}

	ev := s.log.Info().Int64("user_id", userID)
	if in.Role != nil && *in.Role != user.Role {
		ev = ev.Str("old_role", string(user.Role)).Str("new_role", string(*in.Role))
	}
	ev.Msg("user updated by admin")
	return updated, nil
}

// DeleteUser removes the user's prompts first, then the user.
func (s *adminService) DeleteUser(ctx context.Context, userID int64) error {
	if _, err := s.ref.UserExists(ctx, userID); err != nil {
		return err
	}

	n, err := s.prompts.DeleteByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete prompts of user %d: %w", userID, err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user %d: %w", userID, err)
	}

	s.log.Info().Int64("user_id", userID).Int64("prompts_deleted", n).Msg("user deleted")
	return nil
}
