package ports

import (
	"context"

	"github.com/learnhub/lesson-api/internal/core/domain"
)

// UserFilter carries the query parameters of the admin user listing.
type UserFilter struct {
	Role   domain.Role // empty = any role
	Search string      // optional: case-insensitive partial match on name or phone
	Page   int         // 1-based
	Limit  int
}

// UserUpdate holds the optional fields of a user mutation. Nil = unchanged.
type UserUpdate struct {
	Name         *string
	Phone        *string
	Role         *domain.Role
	PasswordHash *string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	// List returns one page of users matching filter and the total match count.
	List(ctx context.Context, filter UserFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository defines read access to the lesson taxonomy.
type CategoryRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	// FindSubCategory looks up a sub-category by its id and parent category id
	// in a single query.
	FindSubCategory(ctx context.Context, subCategoryID, categoryID int64) (*domain.SubCategory, error)
	ListSubCategories(ctx context.Context, categoryID int64) ([]*domain.SubCategory, error)
}

// PromptRepository defines persistence operations for prompts.
type PromptRepository interface {
	Create(ctx context.Context, p *domain.Prompt) (*domain.Prompt, error)
	// ListByUser returns a user's prompts, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Prompt, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
