package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

func TestPromptHandler_Create_UsesIdentity(t *testing.T) {
	stub := &stubPromptService{
		createFn: func(ctx context.Context, in ports.CreatePromptInput) (*domain.Prompt, error) {
			if in.UserID != 7 {
				t.Fatalf("user id must come from the identity, got %d", in.UserID)
			}
			return &domain.Prompt{ID: 1, UserID: in.UserID, CategoryID: in.CategoryID, SubCategoryID: in.SubCategoryID, PromptText: in.PromptText, ResponseText: "lesson"}, nil
		},
	}
	h := NewPromptHandler(stub)
	c, rec := newContext(http.MethodPost, "/api/prompts")

	err := h.Create(c, domain.Identity{UserID: 7, Role: domain.RoleUser}, createPromptRequest{CategoryID: 1, SubCategoryID: 2, PromptText: "tides"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var p domain.Prompt
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if p.ResponseText != "lesson" || p.UserID != 7 {
		t.Fatalf("unexpected prompt: %+v", p)
	}
}

func TestPromptHandler_ListForUser(t *testing.T) {
	listed := false
	stub := &stubPromptService{
		listFn: func(ctx context.Context, userID int64) ([]*domain.Prompt, error) {
			listed = true
			return []*domain.Prompt{}, nil
		},
	}
	h := NewPromptHandler(stub)

	tests := []struct {
		name     string
		param    string
		id       domain.Identity
		wantKind domain.ErrorKind
		wantOK   bool
	}{
		{name: "owner", param: "7", id: domain.Identity{UserID: 7, Role: domain.RoleUser}, wantOK: true},
		{name: "admin", param: "7", id: domain.Identity{UserID: 1, Role: domain.RoleAdmin}, wantOK: true},
		{name: "other user", param: "7", id: domain.Identity{UserID: 8, Role: domain.RoleUser}, wantKind: domain.KindForbidden},
		{name: "bad id", param: "abc", id: domain.Identity{UserID: 7, Role: domain.RoleUser}, wantKind: domain.KindValidation},
		{name: "zero id", param: "0", id: domain.Identity{UserID: 7, Role: domain.RoleUser}, wantKind: domain.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listed = false
			c, rec := newContext(http.MethodGet, "/api/users/"+tt.param+"/prompts")
			c.SetParamNames("id")
			c.SetParamValues(tt.param)

			err := h.ListForUser(c, tt.id)
			if tt.wantOK {
				if err != nil || rec.Code != http.StatusOK || !listed {
					t.Fatalf("err=%v code=%d listed=%v", err, rec.Code, listed)
				}
				return
			}
			if got := domain.AsAppError(err).Kind; got != tt.wantKind {
				t.Fatalf("expected %s, got %s", tt.wantKind, got)
			}
			if listed {
				t.Fatalf("service reached on rejected request")
			}
		})
	}
}
