package middleware

import (
	"github.com/learnhub/lesson-api/internal/core/domain"
)

// Authorize fails with Forbidden unless id holds the required role.
func Authorize(id domain.Identity, required domain.Role) error {
	if id.Role == required {
		return nil
	}
	if required == domain.RoleAdmin {
		return domain.ErrAdminRequired
	}
	return domain.ErrForbidden
}

// AuthorizeOwner lets a user act on their own resources; admins act on any.
func AuthorizeOwner(id domain.Identity, ownerID int64) error {
	if id.IsAdmin() || id.UserID == ownerID {
		return nil
	}
	return domain.ErrForbidden
}
