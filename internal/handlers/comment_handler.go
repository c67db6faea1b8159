package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	content *services.ContentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(content *services.ContentService) *CommentHandler {
	return &CommentHandler{content: content}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
	g.GET("/posts/:id/comments", h.GetCommentsForPost)
	g.GET("/comments", h.ListComments)
	g.GET("/comments/:id", h.GetComment)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment adds a comment to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	postID, err := parseID(c, "post")
	if err != nil {
		return err
	}
	if getUserIDFromContext(c) == 0 {
		return models.NewUnauthenticatedError()
	}
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := h.content.CreateComment(c.Request().Context(), getUserIDFromContext(c), postID, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, comment)
}

// GetCommentsForPost lists the comments of one post
func (h *CommentHandler) GetCommentsForPost(c echo.Context) error {
	postID, err := parseID(c, "post")
	if err != nil {
		return err
	}
	page, err := h.content.ListComments(c.Request().Context(), repositories.CommentFilter{PostID: postID}, pageRequest(c))
	if err != nil {
		return err
	}
	return respondPage(c, "comments", page)
}

// ListComments lists comments filtered by ?post= and ?author=
func (h *CommentHandler) ListComments(c echo.Context) error {
	postID, err := parseOptionalID(c, "post")
	if err != nil {
		return err
	}
	authorID, err := parseOptionalID(c, "author")
	if err != nil {
		return err
	}
	filter := repositories.CommentFilter{PostID: postID, AuthorID: authorID}
	page, err := h.content.ListComments(c.Request().Context(), filter, pageRequest(c))
	if err != nil {
		return err
	}
	return respondPage(c, "comments", page)
}

func (h *CommentHandler) GetComment(c echo.Context) error {
	id, err := parseID(c, "comment")
	if err != nil {
		return err
	}
	comment, err := h.content.GetComment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, comment)
}

// UpdateComment edits a comment owned by the current user
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	id, err := parseID(c, "comment")
	if err != nil {
		return err
	}
	if getUserIDFromContext(c) == 0 {
		return models.NewUnauthenticatedError()
	}
	var req models.UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := h.content.UpdateComment(c.Request().Context(), getUserIDFromContext(c), id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, comment)
}

// DeleteComment deletes a comment owned by the current user
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := parseID(c, "comment")
	if err != nil {
		return err
	}
	if err := h.content.DeleteComment(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
