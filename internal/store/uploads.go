package store

import (
	"context"
	"strings"
	"time"

	"linkhub/internal/bridge"
	"linkhub/internal/models"
	"linkhub/internal/policy"
	"linkhub/internal/validation"
)

// SubmitUpload creates a pending upload from a raw URL submission and
// prepends it to the upload list. The stored URL always carries a scheme;
// the title is the host portion when the submission had one, otherwise the
// raw string.
func (s *Store) SubmitUpload(ctx context.Context, actor *models.User, rawURL string) (*models.Upload, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return nil, ErrMissingURL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	upload := models.Upload{
		ID:          nextID(maxUploadID(s.uploads)),
		Title:       validation.TitleFromURL(raw),
		URL:         validation.NormalizeURL(raw),
		Description: models.DefaultDescription,
		Status:      models.StatusPending,
		SubmittedBy: actor.Username,
		CreatedAt:   time.Now().UTC(),
	}
	s.uploads = append([]models.Upload{upload}, s.uploads...)
	s.persist(ctx, bridge.KeyUploads)
	return &upload, nil
}

// ApproveUpload marks a pending upload approved, leaving its position in the
// list unchanged, and prepends an audit entry.
func (s *Store) ApproveUpload(ctx context.Context, actor *models.User, id int64) (*models.Upload, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfUpload(id)
	if i < 0 {
		return nil, ErrUploadNotFound
	}
	if !s.uploads[i].Pending() {
		return nil, ErrUploadNotPending
	}

	s.uploads[i].Status = models.StatusApproved
	approved := s.uploads[i]
	s.appendAuditLocked(actor.Username, models.ActionApproved, &approved)
	s.persist(ctx, bridge.KeyUploads, bridge.KeyAuditLog)
	return &approved, nil
}

// RejectUpload removes a pending upload entirely and prepends an audit
// entry. Rejected uploads are not retained.
func (s *Store) RejectUpload(ctx context.Context, actor *models.User, id int64) (*models.Upload, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfUpload(id)
	if i < 0 {
		return nil, ErrUploadNotFound
	}
	if !s.uploads[i].Pending() {
		return nil, ErrUploadNotPending
	}

	rejected := s.uploads[i]
	s.uploads = append(s.uploads[:i], s.uploads[i+1:]...)
	s.appendAuditLocked(actor.Username, models.ActionRejected, &rejected)
	s.persist(ctx, bridge.KeyUploads, bridge.KeyAuditLog)
	return &rejected, nil
}

// RemoveUpload deletes an upload of any status. Unlike rejection, removal is
// not recorded in the audit log.
func (s *Store) RemoveUpload(ctx context.Context, actor *models.User, id int64) (*models.Upload, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfUpload(id)
	if i < 0 {
		return nil, ErrUploadNotFound
	}

	removed := s.uploads[i]
	s.uploads = append(s.uploads[:i], s.uploads[i+1:]...)
	s.persist(ctx, bridge.KeyUploads)
	return &removed, nil
}

// appendAuditLocked prepends one audit entry, snapshotting the upload title.
// Caller must hold the write lock.
func (s *Store) appendAuditLocked(adminUsername, action string, upload *models.Upload) {
	entry := models.AuditLogEntry{
		AdminUsername: adminUsername,
		Action:        action,
		UploadID:      upload.ID,
		UploadTitle:   upload.Title,
		Timestamp:     time.Now().UTC(),
	}
	s.auditLog = append([]models.AuditLogEntry{entry}, s.auditLog...)
}

// requireModerator distinguishes a missing actor from an insufficient role.
func requireModerator(actor *models.User) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	if !policy.CanPerform(actor, policy.ActionModerateUpload) {
		return ErrPermissionDenied
	}
	return nil
}
