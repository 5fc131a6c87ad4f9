// Package policy holds the pure authorization predicates for the hub. Every
// state-transition operation checks here before touching any collection, so a
// denied action is always a no-op.
package policy

import "linkhub/internal/models"

// Action identifies an operation subject to authorization.
type Action string

const (
	ActionSubmitUpload   Action = "submit_upload"
	ActionModerateUpload Action = "moderate_upload"
	ActionSendMessage    Action = "send_message"
	ActionChangeProfile  Action = "change_profile"
	ActionChangeRole     Action = "change_role"
	ActionDeleteUser     Action = "delete_user"
	ActionImpersonate    Action = "impersonate"
	ActionListUsers      Action = "list_users"
	ActionViewAuditLog   Action = "view_audit_log"
)

// minTier is the minimum privilege tier required per action. Actions with
// extra constraints (self-targeting, peer protection) check those separately.
var minTier = map[Action]int{
	ActionSubmitUpload:   models.RoleTier(models.RoleUser),
	ActionModerateUpload: models.RoleTier(models.RoleAdmin),
	ActionSendMessage:    models.RoleTier(models.RoleUser),
	ActionChangeProfile:  models.RoleTier(models.RoleUser),
	ActionChangeRole:     models.RoleTier(models.RoleOwner),
	ActionDeleteUser:     models.RoleTier(models.RoleCoOwner),
	ActionImpersonate:    models.RoleTier(models.RoleOwner),
	ActionListUsers:      models.RoleTier(models.RoleCoOwner),
	ActionViewAuditLog:   models.RoleTier(models.RoleAdmin),
}

// CanPerform reports whether the actor meets the minimum tier for the action.
// A nil actor (unauthenticated) can perform nothing.
func CanPerform(actor *models.User, action Action) bool {
	if actor == nil {
		return false
	}
	tier, ok := minTier[action]
	if !ok {
		return false
	}
	return actor.Tier() >= tier
}

// CanChangeRole reports whether the actor may change the target's role.
// Only owners may, and never their own.
func CanChangeRole(actor, target *models.User) bool {
	if !CanPerform(actor, ActionChangeRole) {
		return false
	}
	return actor.ID != target.ID
}

// CanDeleteUser reports whether the actor may delete the target account.
// Owners are never deletable, and co-owners cannot delete their peers.
func CanDeleteUser(actor, target *models.User) bool {
	if !CanPerform(actor, ActionDeleteUser) {
		return false
	}
	if target.IsOwner() {
		return false
	}
	if actor.Role == models.RoleCoOwner && target.Role == models.RoleCoOwner {
		return false
	}
	return true
}

// CanImpersonate reports whether the actor may assume the target's identity.
// Only owners may impersonate, never another owner and never themselves.
func CanImpersonate(actor, target *models.User) bool {
	if !CanPerform(actor, ActionImpersonate) {
		return false
	}
	return !target.IsOwner() && actor.ID != target.ID
}
