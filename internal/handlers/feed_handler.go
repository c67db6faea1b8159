package handlers

import (
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feed *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns posts by the accounts the current user follows
func (h *FeedHandler) GetFeed(c echo.Context) error {
	page, err := h.feed.Feed(c.Request().Context(), getUserIDFromContext(c), pageRequest(c))
	if err != nil {
		return err
	}
	return respondPage(c, "posts", page)
}
