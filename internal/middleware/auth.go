// Package middleware resolves the acting identity for each request from the
// session, falling back to the remember-me cookie.
package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"linkhub/internal/store"
)

// Session keys and the remember-me cookie name shared with the auth handlers.
const (
	SessionUserID         = "user_id"
	SessionImpersonatorID = "impersonator_id"
	RememberCookie        = "remember_user"
)

// AuthMiddleware resolves sessions against the hub store.
type AuthMiddleware struct {
	hub *store.Store
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(hub *store.Store) *AuthMiddleware {
	return &AuthMiddleware{hub: hub}
}

// RequireAuth resolves the acting user and rejects anonymous requests.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	sess := m.resolve(c)
	if sess.Actor == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  store.ErrNotAuthenticated.Error(),
		})
	}
	c.Locals("session", sess)
	return c.Next()
}

// OptionalAuth resolves the acting user if present but lets anonymous
// requests through.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	c.Locals("session", m.resolve(c))
	return c.Next()
}

// resolve builds the request session from the middleware-loaded cookie
// session, honoring the remember-me cookie when the session itself is empty.
// A session naming a user that no longer exists is destroyed rather than
// trusted.
func (m *AuthMiddleware) resolve(c fiber.Ctx) *store.Session {
	result := &store.Session{}

	sess := session.FromContext(c)
	if sess == nil {
		return result
	}

	userID, ok := sess.Get(SessionUserID).(int64)
	if !ok {
		// Long-lived remember cookie re-establishes the session. The
		// cookie value is protected by the encryptcookie middleware.
		userID, ok = rememberedUserID(c)
		if !ok {
			return result
		}
		sess.Set(SessionUserID, userID)
	}

	user, err := m.hub.UserByID(userID)
	if err != nil {
		sess.Destroy()
		c.ClearCookie(RememberCookie)
		return result
	}
	result.Actor = user

	if impersonatorID, ok := sess.Get(SessionImpersonatorID).(int64); ok {
		if impersonator, err := m.hub.UserByID(impersonatorID); err == nil {
			result.ReturnTo = impersonator
		} else {
			sess.Delete(SessionImpersonatorID)
		}
	}
	return result
}

func rememberedUserID(c fiber.Ctx) (int64, bool) {
	raw := c.Cookies(RememberCookie)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
