package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an expected failure of a domain operation
type ErrorKind string

const (
	KindInvalidOperation ErrorKind = "INVALID_OPERATION"
	KindAlreadyFollowing ErrorKind = "ALREADY_FOLLOWING"
	KindNotFollowing     ErrorKind = "NOT_FOLLOWING"
	KindAlreadyLiked     ErrorKind = "ALREADY_LIKED"
	KindNotLiked         ErrorKind = "NOT_LIKED"
	KindAlreadyExists    ErrorKind = "ALREADY_EXISTS"
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindForbidden        ErrorKind = "FORBIDDEN"
	KindUnauthenticated  ErrorKind = "UNAUTHENTICATED"
	KindValidation       ErrorKind = "VALIDATION_ERROR"
	KindInternal         ErrorKind = "INTERNAL_ERROR"
)

// AppError is a typed failure returned by services and repositories
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err, or KindInternal for untyped errors
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func NewInvalidOperationError(message string) *AppError {
	return &AppError{Kind: KindInvalidOperation, Message: message}
}

func NewAlreadyFollowingError(handle string) *AppError {
	return &AppError{Kind: KindAlreadyFollowing, Message: fmt.Sprintf("You are already following %s", handle)}
}

func NewNotFollowingError(handle string) *AppError {
	return &AppError{Kind: KindNotFollowing, Message: fmt.Sprintf("You are not following %s", handle)}
}

func NewAlreadyLikedError(postID uint) *AppError {
	return &AppError{Kind: KindAlreadyLiked, Message: fmt.Sprintf("Post %d is already liked", postID)}
}

func NewNotLikedError(postID uint) *AppError {
	return &AppError{Kind: KindNotLiked, Message: fmt.Sprintf("Post %d is not liked", postID)}
}

func NewAlreadyExistsError(message string) *AppError {
	return &AppError{Kind: KindAlreadyExists, Message: message}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s with ID %v not found", resource, id)}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NewUnauthenticatedError() *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: "Authentication credentials were not provided"}
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "Internal server error", Err: err}
}
