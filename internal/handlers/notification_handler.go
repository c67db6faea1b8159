package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
}

// GetNotifications returns paginated notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	page, err := h.notifications.ListFor(c.Request().Context(), getUserIDFromContext(c), pageRequest(c))
	if err != nil {
		return err
	}
	return respondPage(c, "notifications", page)
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifications.UnreadCount(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks a notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	id, err := parseID(c, "notification")
	if err != nil {
		return err
	}
	notification, err := h.notifications.MarkRead(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, notification)
}

// MarkAllAsRead marks all notifications of the current user as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	updated, err := h.notifications.MarkAllRead(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"updated": updated})
}
