package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"linkhub/internal/metrics"
	"linkhub/internal/middleware"
	"linkhub/internal/store"
)

// rememberDuration is how long the remember-me cookie keeps a login alive.
const rememberDuration = 30 * 24 * time.Hour

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	hub *store.Store
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(hub *store.Store) *AuthHandler {
	return &AuthHandler{hub: hub}
}

// Register creates a new account and signs it in immediately. Any remembered
// login belonging to a previous account is cleared.
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.hub.Register(c.Context(), body.Username, body.Password)
	metrics.Record("register", err)
	if err != nil {
		return storeError(c, err)
	}

	if err := signIn(c, user.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to establish session")
	}
	c.ClearCookie(middleware.RememberCookie)
	return jsonSuccess(c, user.Public())
}

// Login verifies credentials and establishes a session. With remember set,
// an encrypted long-lived cookie keeps the login across browser restarts;
// without it, any previously remembered login is cleared.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Remember bool   `json:"remember"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.hub.Authenticate(body.Username, body.Password)
	metrics.Record("login", err)
	if err != nil {
		return storeError(c, err)
	}

	if err := signIn(c, user.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to establish session")
	}
	if body.Remember {
		c.Cookie(&fiber.Cookie{
			Name:     middleware.RememberCookie,
			Value:    strconv.FormatInt(user.ID, 10),
			Expires:  time.Now().Add(rememberDuration),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	} else {
		c.ClearCookie(middleware.RememberCookie)
	}
	return jsonSuccess(c, user.Public())
}

// Logout destroys the session and the remember-me cookie.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if sess := session.FromContext(c); sess != nil {
		sess.Destroy()
	}
	c.ClearCookie(middleware.RememberCookie)
	metrics.Record("logout", nil)
	return jsonSuccess(c, fiber.Map{"message": "logged out"})
}

// signIn resets the middleware-loaded session and records the signed-in
// user. Resetting drops any impersonation state left over from a previous
// identity.
func signIn(c fiber.Ctx, userID int64) error {
	sess := session.FromContext(c)
	if sess == nil {
		return errors.New("no session in request context")
	}
	if err := sess.Reset(); err != nil {
		return err
	}
	sess.Set(middleware.SessionUserID, userID)
	return nil
}
