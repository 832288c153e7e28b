package handler

import (
	"github.com/learnhub/lesson-api/internal/core/domain"
)

// errorResponse documents the error envelope for swagger. The error
// handler in package api renders it.
type errorResponse struct {
	Status  string                  `json:"status"`
	Message string                  `json:"message"`
	Details []domain.FieldViolation `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Phone    string `json:"phone"    validate:"required,phone"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Phone    string `json:"phone"    validate:"required,phone"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type authResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// --- Prompts ---

// createPromptRequest has no userId: the owner is the authenticated caller.
type createPromptRequest struct {
	CategoryID    int64  `json:"categoryId"    validate:"required,gt=0"`
	SubCategoryID int64  `json:"subCategoryId" validate:"required,gt=0"`
	PromptText    string `json:"promptText"    validate:"required,min=1,max=2000"`
}

// --- Users ---

type updateProfileRequest struct {
	Name            string `json:"name"            validate:"omitempty,min=2,max=100"`
	CurrentPassword string `json:"currentPassword" validate:"omitempty,min=6,max=72"`
	NewPassword     string `json:"newPassword"     validate:"omitempty,min=6,max=72"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// --- Admin ---

type listUsersQuery struct {
	Page   int    `query:"page"   validate:"omitempty,gte=1"`
	Limit  int    `query:"limit"  validate:"omitempty,gte=1,lte=100"`
	Role   string `query:"role"   validate:"omitempty,oneof=USER ADMIN user admin"`
	Search string `query:"search" validate:"omitempty,max=100"`
}

type listUsersResponse struct {
	Users      []*domain.User `json:"users"`
	TotalCount int64          `json:"totalCount"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

type adminUpdateUserRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=2,max=100"`
	Phone *string `json:"phone" validate:"omitempty,phone"`
	Role  *string `json:"role"  validate:"omitempty,oneof=USER ADMIN user admin"`
}
