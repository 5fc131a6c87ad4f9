package store

import "errors"

// Operation failures. Every check runs before any mutation, so an operation
// that returns one of these has not touched the store.
var (
	// Authentication / authorization
	ErrNotAuthenticated     = errors.New("authentication required")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCannotChangeOwnRole  = errors.New("cannot change your own role")
	ErrCannotDeleteOwner    = errors.New("cannot delete an owner account")
	ErrCannotDeletePeer     = errors.New("co-owners cannot delete other co-owners")
	ErrAlreadyImpersonating = errors.New("already impersonating another user")
	ErrNotImpersonating     = errors.New("no impersonation in progress")

	// Conflicts
	ErrDuplicateUsername = errors.New("username already exists")

	// Not found
	ErrUserNotFound     = errors.New("user not found")
	ErrUploadNotFound   = errors.New("upload not found")
	ErrUploadNotPending = errors.New("upload not found or already processed")

	// Validation
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidRole        = errors.New("invalid role")
	ErrMissingURL         = errors.New("a URL is required")
	ErrMissingPassword    = errors.New("a password is required")
	ErrEmptyMessage       = errors.New("message text is required")
)
