package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUserRoutes registers user directory and profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users", h.Register)
	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUser)
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.DELETE("/profile", h.DeleteProfile)
}

// Register creates a new user
func (h *UserHandler) Register(c echo.Context) error {
	var req models.CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.userService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, user)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	page, err := h.userService.List(c.Request().Context(), pageRequest(c))
	if err != nil {
		return err
	}
	return respondPage(c, "users", page)
}

// GetUser returns another user's profile with follow counters
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c, "user")
	if err != nil {
		return err
	}
	profile, err := h.userService.Get(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, profile)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return models.NewUnauthenticatedError()
	}
	profile, err := h.userService.Get(c.Request().Context(), userID, userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, profile)
}

// UpdateProfile updates the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.userService.UpdateProfile(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// DeleteProfile deletes the authenticated user's account
func (h *UserHandler) DeleteProfile(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), getUserIDFromContext(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
