package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler reports liveness together with database reachability
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) HealthCheck(c echo.Context) error {
	status, code := "healthy", http.StatusOK
	database := "up"

	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status, code, database = "degraded", http.StatusServiceUnavailable, "down"
	}

	return c.JSON(code, map[string]string{
		"status":   status,
		"service":  "socialgraph-api",
		"database": database,
	})
}
