package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Name != "Ada" || in.Phone != "0501234567" || in.Password != "secret1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				User:  &domain.User{ID: 1, Name: in.Name, Phone: in.Phone, PasswordHash: "hash", Role: domain.RoleUser},
				Token: "tkn",
			}, nil
		},
	}
	handler := NewAuthHandler(stub)
	c, rec := newContext(http.MethodPost, "/api/auth/register")

	if err := handler.Register(c, registerRequest{Name: "Ada", Phone: "0501234567", Password: "secret1"}); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["role"] != "USER" || resp["token"] != "tkn" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash leaked: %+v", user)
	}
}

func TestAuthHandler_Login_PropagatesError(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, phone, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)
	c, _ := newContext(http.MethodPost, "/api/auth/login")

	err := handler.Login(c, loginRequest{Phone: "0501234567", Password: "nope123"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
