package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnhub/lesson-api/internal/core/domain"
)

func TestValidator_ReportsAllViolations(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{Name: "A", Phone: "12345", Password: "abc"})
	require.Error(t, err)

	ae := domain.AsAppError(err)
	assert.Equal(t, domain.KindValidation, ae.Kind)
	assert.Equal(t, []domain.FieldViolation{
		{Field: "name", Reason: "must be at least 2 characters long"},
		{Field: "phone", Reason: "must be a valid phone number (05XXXXXXXX)"},
		{Field: "password", Reason: "must be at least 6 characters long"},
	}, ae.Details)
}

func TestValidator_Phone(t *testing.T) {
	v := NewValidator()

	for _, phone := range []string{"0501234567", "0599999999"} {
		assert.NoError(t, v.Validate(&loginRequest{Phone: phone, Password: "secret1"}), phone)
	}
	for _, phone := range []string{"0401234567", "050123456", "05012345678", "+972501234567", ""} {
		assert.Error(t, v.Validate(&loginRequest{Phone: phone, Password: "secret1"}), phone)
	}
}

func TestValidator_NewPasswordRequiresCurrent(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&updateProfileRequest{NewPassword: "secret2"})
	require.Error(t, err)
	ae := domain.AsAppError(err)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "currentPassword", ae.Details[0].Field)
	assert.Equal(t, "is required when newPassword is set", ae.Details[0].Reason)

	assert.NoError(t, v.Validate(&updateProfileRequest{Name: "Ada"}))
	assert.NoError(t, v.Validate(&updateProfileRequest{CurrentPassword: "secret1", NewPassword: "secret2"}))
}

func TestValidator_PromptAndQuery(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&createPromptRequest{CategoryID: -1, PromptText: ""})
	ae := domain.AsAppError(err)
	fields := make([]string, 0, len(ae.Details))
	for _, d := range ae.Details {
		fields = append(fields, d.Field)
	}
	assert.Equal(t, []string{"categoryId", "subCategoryId", "promptText"}, fields)

	assert.NoError(t, v.Validate(&listUsersQuery{Role: "admin", Page: 1, Limit: 10}))
	assert.Error(t, v.Validate(&listUsersQuery{Limit: 500}))
	assert.Error(t, v.Validate(&listUsersQuery{Role: "root"}))
}
