package user

import "research-blog-backend/internal/shared/apperror"

var (
	ErrUserNotFound       = apperror.NotFound("User not found")
	ErrEmailAlreadyExists = apperror.Conflict("Email is already registered")
)

// Authentication
var (
	// Unknown email and wrong password share one error so the response does
	// not reveal which accounts exist.
	ErrInvalidCredentials = apperror.Authentication("Invalid credentials")
	ErrMissingCredentials = apperror.Validation("Please provide an email and password")
	ErrNotAuthenticated   = apperror.Authentication("Not authorized to access this route")
)

var (
	ErrInvalidRole = apperror.Validation("Role must be user or admin")
	ErrInvalidID   = apperror.Validation("Invalid user id")
)
