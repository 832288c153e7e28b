package handler

import (
	"context"

	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, phone, password string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, phone, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, phone, password)
}

type stubPromptService struct {
	createFn func(ctx context.Context, in ports.CreatePromptInput) (*domain.Prompt, error)
	listFn   func(ctx context.Context, userID int64) ([]*domain.Prompt, error)
}

func (s *stubPromptService) CreatePrompt(ctx context.Context, in ports.CreatePromptInput) (*domain.Prompt, error) {
	return s.createFn(ctx, in)
}

func (s *stubPromptService) ListUserPrompts(ctx context.Context, userID int64) ([]*domain.Prompt, error) {
	return s.listFn(ctx, userID)
}

type stubAdminService struct {
	listFn   func(ctx context.Context, f ports.UserFilter) (*ports.ListUsersResult, error)
	updateFn func(ctx context.Context, id int64, in ports.AdminUpdateInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubAdminService) ListUsers(ctx context.Context, f ports.UserFilter) (*ports.ListUsersResult, error) {
	return s.listFn(ctx, f)
}

func (s *stubAdminService) ListUserPrompts(context.Context, int64) ([]*domain.Prompt, error) {
	return []*domain.Prompt{}, nil
}

func (s *stubAdminService) UpdateUser(ctx context.Context, id int64, in ports.AdminUpdateInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubAdminService) DeleteUser(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}
