package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	content *services.ContentService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(content *services.ContentService) *PostHandler {
	return &PostHandler{content: content}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post authored by the current user
func (h *PostHandler) CreatePost(c echo.Context) error {
	if getUserIDFromContext(c) == 0 {
		return models.NewUnauthenticatedError()
	}
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.content.CreatePost(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, post)
}

// ListPosts lists posts; ?q= searches title and content, ?author= filters by author id
func (h *PostHandler) ListPosts(c echo.Context) error {
	authorID, err := parseOptionalID(c, "author")
	if err != nil {
		return err
	}
	filter := repositories.PostFilter{AuthorID: authorID, Search: c.QueryParam("q")}
	page, err := h.content.ListPosts(c.Request().Context(), filter, pageRequest(c))
	if err != nil {
		return err
	}
	return respondPage(c, "posts", page)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseID(c, "post")
	if err != nil {
		return err
	}
	post, err := h.content.GetPost(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, post)
}

// UpdatePost updates a post owned by the current user
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := parseID(c, "post")
	if err != nil {
		return err
	}
	if getUserIDFromContext(c) == 0 {
		return models.NewUnauthenticatedError()
	}
	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.content.UpdatePost(c.Request().Context(), getUserIDFromContext(c), id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, post)
}

// DeletePost deletes a post owned by the current user
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parseID(c, "post")
	if err != nil {
		return err
	}
	if err := h.content.DeletePost(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
