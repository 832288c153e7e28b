package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

// Referential confirms that ids referenced by a request point to existing,
// correctly related records. Every check is a single repository lookup and
// must run before any write or generation call.
type Referential struct {
	users      ports.UserRepository
	categories ports.CategoryRepository
}

func NewReferential(users ports.UserRepository, categories ports.CategoryRepository) *Referential {
	return &Referential{users: users, categories: categories}
}

// UserExists returns the user so callers that need it avoid a second lookup.
func (r *Referential) UserExists(ctx context.Context, id int64) (*domain.User, error) {
	u, err := r.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", id, err)
	}
	return u, nil
}

func (r *Referential) CategoryExists(ctx context.Context, id int64) error {
	if _, err := r.categories.FindByID(ctx, id); err != nil {
		return fmt.Errorf("category %d: %w", id, err)
	}
	return nil
}

// SubCategoryBelongsToCategory fails with NotFound both when the
// sub-category is missing and when it hangs under another category.
func (r *Referential) SubCategoryBelongsToCategory(ctx context.Context, subCategoryID, categoryID int64) error {
	if _, err := r.categories.FindSubCategory(ctx, subCategoryID, categoryID); err != nil {
		return fmt.Errorf("sub-category %d of category %d: %w", subCategoryID, categoryID, err)
	}
	return nil
}

// PhoneAvailable fails with Conflict when phone belongs to a user other
// than exceptID. Pass exceptID=0 for new accounts.
func (r *Referential) PhoneAvailable(ctx context.Context, phone string, exceptID int64) error {
	u, err := r.users.FindByPhone(ctx, phone)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("phone lookup: %w", err)
	case u.ID != exceptID:
		return domain.ErrPhoneTaken
	}
	return nil
}

// AttachTopics fills Category and SubCategory on each prompt. It reads each
// distinct category and its sub-categories once. A topic that has since
// disappeared is left nil rather than failing the whole history.
func (r *Referential) AttachTopics(ctx context.Context, prompts []*domain.Prompt) error {
	cats := make(map[int64]*domain.Category)
	subs := make(map[int64]*domain.SubCategory)

	for _, p := range prompts {
		if _, seen := cats[p.CategoryID]; !seen {
			cat, err := r.categories.FindByID(ctx, p.CategoryID)
			switch {
			case errors.Is(err, domain.ErrCategoryNotFound):
				cat = nil
			case err != nil:
				return fmt.Errorf("category %d: %w", p.CategoryID, err)
			default:
				list, err := r.categories.ListSubCategories(ctx, p.CategoryID)
				if err != nil {
					return fmt.Errorf("sub-categories of %d: %w", p.CategoryID, err)
				}
				for _, s := range list {
					subs[s.ID] = s
				}
			}
			cats[p.CategoryID] = cat
		}

		p.Category = cats[p.CategoryID]
		if s, ok := subs[p.SubCategoryID]; ok && s.CategoryID == p.CategoryID {
			p.SubCategory = s
		}
	}
	return nil
}
