package handlers

import (
	"fmt"
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow graph HTTP requests
type FollowHandler struct {
	relationships *services.RelationshipService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(relationships *services.RelationshipService) *FollowHandler {
	return &FollowHandler{relationships: relationships}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/users/:id/activity", h.GetActivity)
}

// FollowUser makes the current user follow another user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	targetID, err := parseID(c, "user")
	if err != nil {
		return err
	}
	target, err := h.relationships.Follow(c.Request().Context(), getUserIDFromContext(c), targetID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{
		"message": fmt.Sprintf("You are now following %s", target.Handle),
		"user":    target,
	})
}

// UnfollowUser makes the current user unfollow another user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	targetID, err := parseID(c, "user")
	if err != nil {
		return err
	}
	target, err := h.relationships.Unfollow(c.Request().Context(), getUserIDFromContext(c), targetID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{
		"message": fmt.Sprintf("You have unfollowed %s", target.Handle),
		"user":    target,
	})
}

// GetFollowers returns the followers of a user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := parseID(c, "user")
	if err != nil {
		return err
	}
	users, err := h.relationships.FollowersOf(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"users": users, "count": len(users)})
}

// GetFollowing returns the users a user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := parseID(c, "user")
	if err != nil {
		return err
	}
	users, err := h.relationships.FollowingOf(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"users": users, "count": len(users)})
}

// GetActivity returns a user's recent activity journal
func (h *FollowHandler) GetActivity(c echo.Context) error {
	userID, err := parseID(c, "user")
	if err != nil {
		return err
	}
	activities, err := h.relationships.ActivityOf(c.Request().Context(), userID, pageRequest(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"activities": activities})
}
