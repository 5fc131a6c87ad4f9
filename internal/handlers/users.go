package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"linkhub/internal/metrics"
	"linkhub/internal/middleware"
	"linkhub/internal/models"
	"linkhub/internal/policy"
	"linkhub/internal/store"
)

// UserHandler handles account administration and impersonation.
type UserHandler struct {
	hub *store.Store
}

// NewUserHandler creates a new user admin handler.
func NewUserHandler(hub *store.Store) *UserHandler {
	return &UserHandler{hub: hub}
}

// ListUsers returns every account without password material.
func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	user := actor(c)
	if user == nil {
		return storeError(c, store.ErrNotAuthenticated)
	}
	if !policy.CanPerform(user, policy.ActionListUsers) {
		return storeError(c, store.ErrPermissionDenied)
	}

	users := h.hub.Users()
	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return jsonSuccess(c, public)
}

// UpdateRole changes another user's role.
func (h *UserHandler) UpdateRole(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := h.hub.ChangeRole(c.Context(), actor(c), id, body.Role)
	metrics.Record("change_role", err)
	if err != nil {
		return storeError(c, err)
	}
	return jsonSuccess(c, updated.Public())
}

// DeleteUser removes an account. Historical records keep its username.
func (h *UserHandler) DeleteUser(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	deleted, err := h.hub.DeleteUser(c.Context(), actor(c), id)
	metrics.Record("delete_user", err)
	if err != nil {
		return storeError(c, err)
	}
	return jsonSuccess(c, fiber.Map{
		"message":  "user deleted",
		"username": deleted.Username,
	})
}

// Impersonate switches the session to act as the target user, keeping the
// owner's identity for the return trip.
func (h *UserHandler) Impersonate(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	sess := currentSession(c)
	err = h.hub.StartImpersonation(sess, id)
	metrics.Record("impersonate", err)
	if err != nil {
		return storeError(c, err)
	}
	if err := h.saveSession(c, sess); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update session")
	}
	return jsonSuccess(c, fiber.Map{
		"acting_as":    sess.Actor.Public(),
		"impersonator": sess.ReturnTo.Public(),
	})
}

// StopImpersonation restores the original identity.
func (h *UserHandler) StopImpersonation(c fiber.Ctx) error {
	sess := currentSession(c)
	err := h.hub.StopImpersonation(sess)
	metrics.Record("stop_impersonation", err)
	if err != nil {
		return storeError(c, err)
	}
	if err := h.saveSession(c, sess); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update session")
	}
	return jsonSuccess(c, fiber.Map{"user": sess.Actor.Public()})
}

// saveSession writes the resolved identity back into the cookie session.
func (h *UserHandler) saveSession(c fiber.Ctx, sess *store.Session) error {
	cookieSess := session.FromContext(c)
	if cookieSess == nil {
		return errors.New("no session in request context")
	}
	cookieSess.Set(middleware.SessionUserID, sess.Actor.ID)
	if sess.Impersonating() {
		cookieSess.Set(middleware.SessionImpersonatorID, sess.ReturnTo.ID)
	} else {
		cookieSess.Delete(middleware.SessionImpersonatorID)
	}
	return nil
}
