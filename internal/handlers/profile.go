package handlers

import (
	"github.com/gofiber/fiber/v3"

	"linkhub/internal/metrics"
	"linkhub/internal/store"
)

// ProfileHandler handles the signed-in user's own account.
type ProfileHandler struct {
	hub *store.Store
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(hub *store.Store) *ProfileHandler {
	return &ProfileHandler{hub: hub}
}

// Show returns the acting user's profile, including impersonation state.
func (h *ProfileHandler) Show(c fiber.Ctx) error {
	sess := currentSession(c)
	if sess.Actor == nil {
		return storeError(c, store.ErrNotAuthenticated)
	}

	resp := fiber.Map{
		"user":          sess.Actor.Public(),
		"impersonating": sess.Impersonating(),
	}
	if sess.Impersonating() {
		resp["impersonator"] = sess.ReturnTo.Public()
	}
	return jsonSuccess(c, resp)
}

// ChangeUsername renames the acting user, cascading the new name through
// every record that carries it.
func (h *ProfileHandler) ChangeUsername(c fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.hub.ChangeUsername(c.Context(), actor(c), body.Username)
	metrics.Record("change_username", err)
	if err != nil {
		return storeError(c, err)
	}
	return jsonSuccess(c, user.Public())
}

// ChangePassword replaces the acting user's password.
func (h *ProfileHandler) ChangePassword(c fiber.Ctx) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	err := h.hub.ChangePassword(c.Context(), actor(c), body.Password)
	metrics.Record("change_password", err)
	if err != nil {
		return storeError(c, err)
	}
	return jsonSuccess(c, fiber.Map{"message": "password updated"})
}
