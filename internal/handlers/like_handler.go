package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	content *services.ContentService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(content *services.ContentService) *LikeHandler {
	return &LikeHandler{content: content}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/likes", h.LikePost)
	g.DELETE("/posts/:id/likes", h.UnlikePost)
}

// LikePost handles liking a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	postID, err := parseID(c, "post")
	if err != nil {
		return err
	}
	like, err := h.content.Like(c.Request().Context(), getUserIDFromContext(c), postID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, like)
}

// UnlikePost handles unliking a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	postID, err := parseID(c, "post")
	if err != nil {
		return err
	}
	if err := h.content.Unlike(c.Request().Context(), getUserIDFromContext(c), postID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
