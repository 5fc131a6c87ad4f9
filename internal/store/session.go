package store

import (
	"linkhub/internal/models"
	"linkhub/internal/policy"
)

// Session is the per-caller authentication state: the acting user, plus the
// original identity while an impersonation is active. A single optional
// ReturnTo field makes impersonation structurally depth-1.
type Session struct {
	Actor    *models.User
	ReturnTo *models.User
}

// Impersonating reports whether the session is currently assuming another
// user's identity.
func (sess *Session) Impersonating() bool {
	return sess != nil && sess.ReturnTo != nil
}

// StartImpersonation swaps the session actor for the target user, stashing
// the original. Owner only, never another owner, never self, never nested.
func (s *Store) StartImpersonation(sess *Session, targetID int64) error {
	if sess == nil || sess.Actor == nil {
		return ErrNotAuthenticated
	}
	if sess.Impersonating() {
		return ErrAlreadyImpersonating
	}
	if !policy.CanPerform(sess.Actor, policy.ActionImpersonate) {
		return ErrPermissionDenied
	}

	target, err := s.UserByID(targetID)
	if err != nil {
		return err
	}
	if !policy.CanImpersonate(sess.Actor, target) {
		return ErrPermissionDenied
	}

	sess.ReturnTo = sess.Actor
	sess.Actor = target
	return nil
}

// StopImpersonation restores the stashed identity exactly and clears it.
func (s *Store) StopImpersonation(sess *Session) error {
	if sess == nil || sess.Actor == nil {
		return ErrNotAuthenticated
	}
	if !sess.Impersonating() {
		return ErrNotImpersonating
	}
	sess.Actor = sess.ReturnTo
	sess.ReturnTo = nil
	return nil
}
