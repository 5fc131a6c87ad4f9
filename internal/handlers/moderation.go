package handlers

import (
	"github.com/gofiber/fiber/v3"

	"linkhub/internal/metrics"
	"linkhub/internal/models"
	"linkhub/internal/policy"
	"linkhub/internal/store"
)

// ModerationHandler handles the pending queue and the audit trail.
type ModerationHandler struct {
	hub *store.Store
}

// NewModerationHandler creates a new moderation handler.
func NewModerationHandler(hub *store.Store) *ModerationHandler {
	return &ModerationHandler{hub: hub}
}

// ListPending returns all uploads awaiting moderation.
func (h *ModerationHandler) ListPending(c fiber.Ctx) error {
	user := actor(c)
	if user == nil {
		return storeError(c, store.ErrNotAuthenticated)
	}
	if !policy.CanPerform(user, policy.ActionModerateUpload) {
		return storeError(c, store.ErrPermissionDenied)
	}

	pending := h.hub.PendingUploads()
	if pending == nil {
		pending = []models.Upload{}
	}
	return jsonSuccess(c, pending)
}

// Approve marks a pending upload approved.
func (h *ModerationHandler) Approve(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid upload id")
	}

	approved, err := h.hub.ApproveUpload(c.Context(), actor(c), id)
	metrics.Record("approve_upload", err)
	if err != nil {
		return storeError(c, err)
	}
	return jsonSuccess(c, fiber.Map{
		"message": "upload approved",
		"upload":  approved,
	})
}

// Reject removes a pending upload with an audit trail entry.
func (h *ModerationHandler) Reject(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid upload id")
	}

	rejected, err := h.hub.RejectUpload(c.Context(), actor(c), id)
	metrics.Record("reject_upload", err)
	if err != nil {
		return storeError(c, err)
	}
	return jsonSuccess(c, fiber.Map{
		"message": "upload rejected",
		"id":      rejected.ID,
	})
}

// AuditLog returns the moderation audit trail, most recent first.
func (h *ModerationHandler) AuditLog(c fiber.Ctx) error {
	user := actor(c)
	if user == nil {
		return storeError(c, store.ErrNotAuthenticated)
	}
	if !policy.CanPerform(user, policy.ActionViewAuditLog) {
		return storeError(c, store.ErrPermissionDenied)
	}

	log := h.hub.AuditLog()
	if log == nil {
		log = []models.AuditLogEntry{}
	}
	return jsonSuccess(c, log)
}
