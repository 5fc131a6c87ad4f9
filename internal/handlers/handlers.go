// Package handlers implements the JSON API surface of the hub. Every handler
// resolves the acting identity from request locals, delegates to the store,
// and maps store errors onto HTTP status codes through a single table.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"linkhub/internal/models"
	"linkhub/internal/store"
)

// Locals keys set by the auth middleware.
const (
	LocalSession = "session"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// storeError maps a store error onto the HTTP status it should surface as.
func storeError(c fiber.Ctx, err error) error {
	return jsonError(c, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotAuthenticated),
		errors.Is(err, store.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, store.ErrPermissionDenied),
		errors.Is(err, store.ErrCannotChangeOwnRole),
		errors.Is(err, store.ErrCannotDeleteOwner),
		errors.Is(err, store.ErrCannotDeletePeer):
		return fiber.StatusForbidden
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrUploadNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, store.ErrDuplicateUsername),
		errors.Is(err, store.ErrUploadNotPending),
		errors.Is(err, store.ErrAlreadyImpersonating),
		errors.Is(err, store.ErrNotImpersonating):
		return fiber.StatusConflict
	case errors.Is(err, store.ErrInvalidUsername),
		errors.Is(err, store.ErrInvalidRole),
		errors.Is(err, store.ErrMissingURL),
		errors.Is(err, store.ErrMissingPassword),
		errors.Is(err, store.ErrEmptyMessage):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// currentSession returns the session placed in locals by the auth middleware,
// or an empty session when the request is anonymous.
func currentSession(c fiber.Ctx) *store.Session {
	if sess, ok := c.Locals(LocalSession).(*store.Session); ok && sess != nil {
		return sess
	}
	return &store.Session{}
}

// actor returns the acting user, nil when anonymous.
func actor(c fiber.Ctx) *models.User {
	return currentSession(c).Actor
}
