package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := map[models.ErrorKind]int{
		models.KindInvalidOperation: http.StatusBadRequest,
		models.KindAlreadyFollowing: http.StatusBadRequest,
		models.KindNotFollowing:     http.StatusBadRequest,
		models.KindAlreadyLiked:     http.StatusBadRequest,
		models.KindNotLiked:         http.StatusBadRequest,
		models.KindValidation:       http.StatusBadRequest,
		models.KindUnauthenticated:  http.StatusUnauthorized,
		models.KindForbidden:        http.StatusForbidden,
		models.KindNotFound:         http.StatusNotFound,
		models.KindAlreadyExists:    http.StatusConflict,
		models.KindInternal:         http.StatusInternalServerError,
		"SOMETHING_ELSE":            http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, StatusFor(kind), kind)
	}
}

func TestErrorHandler(t *testing.T) {
	var logs bytes.Buffer
	handler := ErrorHandler(slog.New(slog.NewJSONHandler(&logs, nil)))

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"app error", models.NewNotLikedError(3), http.StatusBadRequest, "NOT_LIKED", "Post 3 is not liked"},
		{"wrapped app error", errors.Join(errors.New("ctx"), models.NewForbiddenError("nope")), http.StatusForbidden, "FORBIDDEN", "nope"},
		{"echo error", echo.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "Not Found"},
		{"method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "NOT_FOUND", "Method Not Allowed"},
		{"internal app error hides cause", models.NewInternalError(errors.New("pq: secret")), http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"},
		{"untyped error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantMessage, body.Error.Message)
		})
	}

	assert.Contains(t, logs.String(), "pq: secret")
}

func TestErrorHandler_HeadAndCommitted(t *testing.T) {
	handler := ErrorHandler(slog.Default())
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodHead, "/", nil), rec)
	handler(models.NewUnauthenticatedError(), c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, rec.Body.Len())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.NoContent(http.StatusNoContent))
	handler(models.NewNotFoundError("post", 1), c)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
