package models

import "time"

// Upload status values. There is no stored "rejected" state: rejection and
// moderator removal delete the item outright.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// DefaultDescription is attached to submissions that carry no description.
const DefaultDescription = "A new user submission."

// Upload is a community link submission awaiting or past moderation.
// SubmittedBy holds the submitter's username by value, not a reference, so
// username changes must rewrite it.
type Upload struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	SubmittedBy string    `json:"submitted_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Pending returns true if the upload has not been moderated yet.
func (u *Upload) Pending() bool {
	return u.Status == StatusPending
}
