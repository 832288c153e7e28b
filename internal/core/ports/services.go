package ports

import (
	"context"

	"github.com/learnhub/lesson-api/internal/core/domain"
)

// RegisterInput carries a self-registration request.
type RegisterInput struct {
	Name     string
	Phone    string
	Password string
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, phone, password string) (*AuthResult, error)
}

// CreatePromptInput carries the data needed to generate and store a lesson.
type CreatePromptInput struct {
	UserID        int64
	CategoryID    int64
	SubCategoryID int64
	PromptText    string
}

type PromptService interface {
	CreatePrompt(ctx context.Context, in CreatePromptInput) (*domain.Prompt, error)
	ListUserPrompts(ctx context.Context, userID int64) ([]*domain.Prompt, error)
}

// UpdateProfileInput carries a self-service profile change. Empty strings
// mean "leave unchanged".
type UpdateProfileInput struct {
	Name            string
	CurrentPassword string
	NewPassword     string
}

type UserService interface {
	UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*domain.User, error)
}

// ListUsersResult is one page of the admin user listing.
type ListUsersResult struct {
	Users      []*domain.User
	TotalCount int64
	Page       int
	Limit      int
	TotalPages int
}

// AdminUpdateInput carries an administrator's change to another account.
type AdminUpdateInput struct {
	Name  *string
	Phone *string
	Role  *domain.Role
}

type AdminService interface {
	ListUsers(ctx context.Context, filter UserFilter) (*ListUsersResult, error)
	ListUserPrompts(ctx context.Context, userID int64) ([]*domain.Prompt, error)
	UpdateUser(ctx context.Context, userID int64, in AdminUpdateInput) (*domain.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListSubCategories(ctx context.Context, categoryID int64) ([]*domain.SubCategory, error)
}
