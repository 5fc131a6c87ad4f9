package models

import "time"

// Audit log actions. Only approve and reject are audited; moderator removal
// of an already-visible post is not.
const (
	ActionApproved = "approved"
	ActionRejected = "rejected"
)

// AuditLogEntry records one moderation decision. Entries are append-only and
// kept most-recent-first. UploadTitle is a denormalized snapshot of the title
// at decision time; AdminUsername tracks the acting moderator's current
// username and is rewritten when they rename.
type AuditLogEntry struct {
	AdminUsername string    `json:"admin_username"`
	Action        string    `json:"action"`
	UploadID      int64     `json:"upload_id"`
	UploadTitle   string    `json:"upload_title"`
	Timestamp     time.Time `json:"timestamp"`
}
