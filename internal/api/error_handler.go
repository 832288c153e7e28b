package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/learnhub/lesson-api/internal/api/metrics"
	"github.com/learnhub/lesson-api/internal/core/domain"
)

const genericMessage = "internal server error"

// errorResponse is the canonical error envelope for all API errors.
// Status is "fail" for client errors and "error" for server errors.
type errorResponse struct {
	Status  string                  `json:"status"`
	Message string                  `json:"message"`
	Details []domain.FieldViolation `json:"details,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Resolves every error to a domain.AppError, folding Echo's own errors in.
//   - Logs expected failures at warn and internal faults at error with the cause.
//   - Renders {"status", "message", "details"?}; dev adds "error" on 5xx.
func NewHTTPErrorHandler(log zerolog.Logger, dev bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		ae := resolveError(err)
		code := statusFor(ae.Kind)
		metrics.ErrorsTotal.WithLabelValues(ae.Kind.String()).Inc()

		ev := log.Warn()
		if !ae.IsOperational() {
			ev = log.Error()
		}
		ev.Err(err).
			Str("kind", ae.Kind.String()).
			Int("status", code).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("request failed")

		resp := errorResponse{
			Status:  "fail",
			Message: ae.Message,
			Details: ae.Details,
		}
		if code >= http.StatusInternalServerError {
			resp.Status = "error"
			if !ae.IsOperational() {
				resp.Message = genericMessage
			}
			if dev {
				resp.Error = err.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

// resolveError returns the AppError in err's chain. Echo's own errors (bind
// failures, unknown routes, oversized bodies) are mapped onto the same kinds.
func resolveError(err error) *domain.AppError {
	var ae *domain.AppError
	if errors.As(err, &ae) {
		return ae
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		switch he.Code {
		case http.StatusUnauthorized:
			return domain.Unauthenticated(msg)
		case http.StatusForbidden:
			return domain.Forbidden(msg)
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return domain.NotFound(msg)
		case http.StatusConflict:
			return domain.Conflict(msg)
		case http.StatusTooManyRequests:
			return domain.TooManyRequests(msg)
		}
		if he.Code >= 400 && he.Code < 500 {
			return domain.Invalid(msg)
		}
	}

	return domain.AsAppError(err)
}

func statusFor(k domain.ErrorKind) int {
	switch k {
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindTooManyRequests:
		return http.StatusTooManyRequests
	case domain.KindUpstream:
		return http.StatusBadGateway
	case domain.KindPersistence, domain.KindUnknown:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
