// Package common defines shared constants and sentinel errors used across
// the application layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorInvalidInput          = errors.New("invalid input")
	ErrorInvalidUsernameFormat = errors.New("invalid username")
	ErrorEmptyPost             = errors.New("post cannot be empty")
	ErrorPostTooLong           = errors.New("post cannot exceed 500 characters")

	// Follow-graph errors.
	ErrorPrivateAccount   = errors.New("cannot follow a private account unless they follow you first")
	ErrorAlreadyFollowing = errors.New("you are already following this user")
	ErrorNotFollowing     = errors.New("you are not following this user")
	ErrorSelfFollow       = errors.New("cannot follow yourself")

	// Registration errors.
	ErrorEmailTaken    = errors.New("email address already in use")
	ErrorUsernameTaken = errors.New("username already in use")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Upload / storage collaborator failures.
	ErrorUploadFailed = errors.New("failed to upload image")
)
