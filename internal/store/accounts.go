package store

import (
	"context"
	"strings"
	"time"

	"linkhub/internal/auth"
	"linkhub/internal/bridge"
	"linkhub/internal/models"
	"linkhub/internal/policy"
	"linkhub/internal/validation"
)

// Register creates a new account with the lowest role. Usernames are unique
// case-insensitively across all accounts.
func (s *Store) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if !validUsername(username) {
		return nil, ErrInvalidUsername
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usernameTakenLocked(username, 0) {
		return nil, ErrDuplicateUsername
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		ID:           nextID(maxUserID(s.users)),
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	s.users = append(s.users, user)
	s.persist(ctx, bridge.KeyUsers)
	return &user, nil
}

// Authenticate matches a username case-insensitively and verifies the
// password. It never reveals which of the two was wrong.
func (s *Store) Authenticate(username, password string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			if !auth.VerifyPassword(u.PasswordHash, password) {
				return nil, ErrInvalidCredentials
			}
			user := u
			return &user, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// ChangeUsername renames the acting user and rewrites every denormalized
// copy of the old name across uploads, chat messages, and the audit log in
// one atomic pass.
func (s *Store) ChangeUsername(ctx context.Context, actor *models.User, newUsername string) (*models.User, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	newUsername = strings.TrimSpace(newUsername)
	if !validUsername(newUsername) {
		return nil, ErrInvalidUsername
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfUser(actor.ID)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	if s.usernameTakenLocked(newUsername, actor.ID) {
		return nil, ErrDuplicateUsername
	}

	oldUsername := s.users[i].Username
	s.users[i].Username = newUsername
	s.renameReferencesLocked(oldUsername, newUsername)
	s.persist(ctx, bridge.KeyUsers, bridge.KeyUploads, bridge.KeyChatMessages, bridge.KeyAuditLog)

	user := s.users[i]
	return &user, nil
}

// ChangePassword replaces the acting user's password hash.
func (s *Store) ChangePassword(ctx context.Context, actor *models.User, newPassword string) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	if newPassword == "" {
		return ErrMissingPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfUser(actor.ID)
	if i < 0 {
		return ErrUserNotFound
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	s.users[i].PasswordHash = hash
	s.persist(ctx, bridge.KeyUsers)
	return nil
}

// ChangeRole sets another user's role. Owner only, never self-targeting.
func (s *Store) ChangeRole(ctx context.Context, actor *models.User, targetID int64, newRole string) (*models.User, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	if !policy.CanPerform(actor, policy.ActionChangeRole) {
		return nil, ErrPermissionDenied
	}
	if !models.ValidRole(newRole) {
		return nil, ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfUser(targetID)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	if !policy.CanChangeRole(actor, &s.users[i]) {
		return nil, ErrCannotChangeOwnRole
	}

	s.users[i].Role = newRole
	s.persist(ctx, bridge.KeyUsers)
	user := s.users[i]
	return &user, nil
}

// DeleteUser removes an account. Owners are never deletable and co-owners
// cannot delete their peers. Historical uploads, chat messages, and audit
// entries keep the deleted account's username string.
func (s *Store) DeleteUser(ctx context.Context, actor *models.User, targetID int64) (*models.User, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	if !policy.CanPerform(actor, policy.ActionDeleteUser) {
		return nil, ErrPermissionDenied
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfUser(targetID)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	target := s.users[i]
	if target.IsOwner() {
		return nil, ErrCannotDeleteOwner
	}
	if !policy.CanDeleteUser(actor, &target) {
		return nil, ErrCannotDeletePeer
	}

	s.users = append(s.users[:i], s.users[i+1:]...)
	s.persist(ctx, bridge.KeyUsers)
	return &target, nil
}

// renameReferencesLocked rewrites every denormalized copy of oldUsername in
// one pass so the store is never observed with a partial cascade. Caller
// must hold the write lock.
func (s *Store) renameReferencesLocked(oldUsername, newUsername string) {
	for i := range s.uploads {
		if s.uploads[i].SubmittedBy == oldUsername {
			s.uploads[i].SubmittedBy = newUsername
		}
	}
	for i := range s.chatMessages {
		if s.chatMessages[i].Username == oldUsername {
			s.chatMessages[i].Username = newUsername
		}
	}
	for i := range s.auditLog {
		if s.auditLog[i].AdminUsername == oldUsername {
			s.auditLog[i].AdminUsername = newUsername
		}
	}
}

// usernameTakenLocked reports whether username is held, case-insensitively,
// by any user other than excludeID. Caller must hold the lock.
func (s *Store) usernameTakenLocked(username string, excludeID int64) bool {
	for _, u := range s.users {
		if u.ID != excludeID && strings.EqualFold(u.Username, username) {
			return true
		}
	}
	return false
}

func validUsername(username string) bool {
	return validation.ValidateUsername(username)
}
