package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated user id, 0 when anonymous
func getUserIDFromContext(c echo.Context) uint {
	return middleware.UserID(c)
}

func parseID(c echo.Context, resource string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + resource + " ID")
	}
	return uint(id), nil
}

// parseOptionalID reads a numeric query filter; empty means no filter
func parseOptionalID(c echo.Context, name string) (uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, models.NewValidationError("Invalid " + name + " filter")
	}
	return uint(id), nil
}

// pageRequest reads page and page_size; junk values fall back to defaults
func pageRequest(c echo.Context) services.PageRequest {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("page_size"))
	return services.NewPageRequest(page, size)
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	return c.Validate(req)
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

func respondPage[T any](c echo.Context, key string, page services.Page[T]) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{key: page.Items},
		"meta":    page.Meta,
	})
}
