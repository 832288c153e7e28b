package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

// AuthedHandler is a handler that can only run with a verified identity.
type AuthedHandler func(c echo.Context, id domain.Identity) error

// Pipeline composes the request gates in a fixed order: identity, then
// role, then body schema, then the handler. Each gate returns the first
// error it meets; the error handler renders it.
type Pipeline struct {
	verifier ports.TokenVerifier
}

func NewPipeline(verifier ports.TokenVerifier) *Pipeline {
	return &Pipeline{verifier: verifier}
}

func (p *Pipeline) Public(h echo.HandlerFunc) echo.HandlerFunc {
	return h
}

func (p *Pipeline) Protected(h AuthedHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := Authenticate(c, p.verifier)
		if err != nil {
			return err
		}
		c.Set(identityKey, id)
		return h(c, id)
	}
}

func (p *Pipeline) Admin(h AuthedHandler) echo.HandlerFunc {
	return p.Protected(func(c echo.Context, id domain.Identity) error {
		if err := Authorize(id, domain.RoleAdmin); err != nil {
			return err
		}
		return h(c, id)
	})
}

// WithBody binds and validates a T from the request before calling h.
func WithBody[T any](h func(c echo.Context, id domain.Identity, body T) error) AuthedHandler {
	return func(c echo.Context, id domain.Identity) error {
		var body T
		if err := BindBody(c, &body); err != nil {
			return err
		}
		return h(c, id, body)
	}
}

// PublicBody is WithBody for routes without authentication.
func PublicBody[T any](h func(c echo.Context, body T) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body T
		if err := BindBody(c, &body); err != nil {
			return err
		}
		return h(c, body)
	}
}

// BindBody decodes the JSON body into dst and runs the echo validator.
func BindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return domain.Invalid("malformed request body")
	}
	return c.Validate(dst)
}
