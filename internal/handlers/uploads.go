package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"linkhub/internal/metrics"
	"linkhub/internal/models"
	"linkhub/internal/store"
)

// UploadHandler handles community submissions.
type UploadHandler struct {
	hub *store.Store
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(hub *store.Store) *UploadHandler {
	return &UploadHandler{hub: hub}
}

// List returns every upload, most recent first.
func (h *UploadHandler) List(c fiber.Ctx) error {
	uploads := h.hub.Uploads()
	if uploads == nil {
		uploads = []models.Upload{}
	}
	return jsonSuccess(c, uploads)
}

// Create submits a new upload from a raw URL.
func (h *UploadHandler) Create(c fiber.Ctx) error {
	var body struct {
		URL string `json:"url"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	upload, err := h.hub.SubmitUpload(c.Context(), actor(c), body.URL)
	metrics.Record("submit_upload", err)
	if err != nil {
		return storeError(c, err)
	}
	return jsonSuccess(c, upload)
}

// Remove deletes an upload of any status without an audit trail entry.
func (h *UploadHandler) Remove(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid upload id")
	}

	removed, err := h.hub.RemoveUpload(c.Context(), actor(c), id)
	metrics.Record("remove_upload", err)
	if err != nil {
		return storeError(c, err)
	}
	return jsonSuccess(c, fiber.Map{
		"message": "upload removed",
		"id":      removed.ID,
	})
}

// parseID parses the :id route parameter.
func parseID(c fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
