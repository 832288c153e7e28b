package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/learnhub/lesson-api/internal/core/domain"
)

// pathID reads a positive integer path parameter. Anything else is a
// validation failure reported against the parameter name.
func pathID(c echo.Context, name string) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(c).MustInt64(name, &id).BindError(); err != nil || id <= 0 {
		return 0, domain.Invalid("validation failed", domain.FieldViolation{
			Field:  name,
			Reason: "must be a positive integer",
		})
	}
	return id, nil
}
