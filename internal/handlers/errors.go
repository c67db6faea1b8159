package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// StatusFor maps an error kind onto its HTTP status
func StatusFor(kind models.ErrorKind) int {
	switch kind {
	case models.KindInvalidOperation, models.KindAlreadyFollowing, models.KindNotFollowing,
		models.KindAlreadyLiked, models.KindNotLiked, models.KindValidation:
		return http.StatusBadRequest
	case models.KindUnauthenticated:
		return http.StatusUnauthorized
	case models.KindForbidden:
		return http.StatusForbidden
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func kindForStatus(status int) models.ErrorKind {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return models.KindValidation
	case http.StatusUnauthorized:
		return models.KindUnauthenticated
	case http.StatusForbidden:
		return models.KindForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return models.KindNotFound
	case http.StatusConflict:
		return models.KindAlreadyExists
	default:
		return models.KindInternal
	}
}

// ErrorHandler renders every failure as {"success":false,"error":{"code","message"}}
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status  int
			kind    models.ErrorKind
			message string
			appErr  *models.AppError
			httpErr *echo.HTTPError
		)
		switch {
		case errors.As(err, &appErr):
			kind = appErr.Kind
			status = StatusFor(kind)
			message = appErr.Message
		case errors.As(err, &httpErr):
			status = httpErr.Code
			kind = kindForStatus(status)
			message = fmt.Sprint(httpErr.Message)
		default:
			status = http.StatusInternalServerError
			kind = models.KindInternal
			message = http.StatusText(status)
		}

		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
			message = "Internal server error"
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, echo.Map{
				"success": false,
				"error":   echo.Map{"code": kind, "message": message},
			})
		}
		if err != nil {
			logger.Error("failed to write error response", slog.Any("error", err))
		}
	}
}
