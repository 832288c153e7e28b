package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

var adminID = domain.Identity{UserID: 1, Role: domain.RoleAdmin}

func TestAdminHandler_ListUsers_NormalizesQuery(t *testing.T) {
	stub := &stubAdminService{
		listFn: func(ctx context.Context, f ports.UserFilter) (*ports.ListUsersResult, error) {
			if f.Role != domain.RoleAdmin || f.Search != "ada" || f.Page != 2 || f.Limit != 5 {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return &ports.ListUsersResult{Users: []*domain.User{}, TotalCount: 6, Page: 2, Limit: 5, TotalPages: 2}, nil
		},
	}
	h := NewAdminHandler(stub)
	c, rec := newContext(http.MethodGet, "/api/admin/users?role=admin&search=ada&page=2&limit=5")

	if err := h.ListUsers(c, adminID); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["totalCount"] != float64(6) || resp["totalPages"] != float64(2) {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAdminHandler_ListUsers_InvalidQuery(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{})

	for _, target := range []string{
		"/api/admin/users?limit=1000",
		"/api/admin/users?role=owner",
		"/api/admin/users?page=abc",
	} {
		c, _ := newContext(http.MethodGet, target)
		err := h.ListUsers(c, adminID)
		if got := domain.AsAppError(err).Kind; got != domain.KindValidation {
			t.Fatalf("%s: expected validation, got %s", target, got)
		}
	}
}

func TestAdminHandler_UpdateUser_NormalizesRole(t *testing.T) {
	stub := &stubAdminService{
		updateFn: func(ctx context.Context, id int64, in ports.AdminUpdateInput) (*domain.User, error) {
			if id != 4 || in.Role == nil || *in.Role != domain.RoleAdmin {
				t.Fatalf("unexpected update: id=%d in=%+v", id, in)
			}
			return &domain.User{ID: id, Role: *in.Role}, nil
		},
	}
	h := NewAdminHandler(stub)
	c, rec := newContext(http.MethodPatch, "/api/admin/users/4")
	c.SetParamNames("id")
	c.SetParamValues("4")

	role := "admin"
	if err := h.UpdateUser(c, adminID, adminUpdateUserRequest{Role: &role}); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminHandler_DeleteUser(t *testing.T) {
	var deleted int64
	stub := &stubAdminService{
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	h := NewAdminHandler(stub)
	c, rec := newContext(http.MethodDelete, "/api/admin/users/9")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.DeleteUser(c, adminID); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != 9 || rec.Code != http.StatusOK {
		t.Fatalf("deleted=%d code=%d", deleted, rec.Code)
	}
}
