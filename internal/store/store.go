// Package store owns the entity collections and implements every state
// transition the hub supports. Operations validate through the policy
// package before mutating anything, mutate under a single lock so no caller
// ever observes a partially updated snapshot, and persist the touched
// collections through the bridge as whole snapshots.
package store

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"linkhub/internal/auth"
	"linkhub/internal/bridge"
	"linkhub/internal/models"
)

// Store holds the entity collections. Uploads and the audit log are kept
// most-recent-first; users and chat messages are in insertion order.
type Store struct {
	mu     sync.RWMutex
	bridge bridge.Bridge

	users        []models.User
	uploads      []models.Upload
	auditLog     []models.AuditLogEntry
	chatMessages []models.ChatMessage
}

// Open loads all collections from the bridge. A collection that fails to
// load degrades to empty and is logged; it is never a startup failure.
func Open(ctx context.Context, b bridge.Bridge) *Store {
	s := &Store{bridge: b}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range []string{bridge.KeyUsers, bridge.KeyUploads, bridge.KeyAuditLog, bridge.KeyChatMessages} {
		s.loadLocked(ctx, key)
	}
	return s
}

// Reload replaces one collection wholesale from the bridge. Called when the
// change feed reports a foreign write; partial merges are never attempted.
func (s *Store) Reload(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx, key)
}

// loadLocked reads one collection from the bridge into the store, falling
// back to empty on any failure. Caller must hold the write lock.
func (s *Store) loadLocked(ctx context.Context, key string) {
	var err error
	switch key {
	case bridge.KeyUsers:
		var users []models.User
		if _, err = s.bridge.Load(ctx, key, &users); err == nil {
			s.users = users
		}
	case bridge.KeyUploads:
		var uploads []models.Upload
		if _, err = s.bridge.Load(ctx, key, &uploads); err == nil {
			s.uploads = uploads
		}
	case bridge.KeyAuditLog:
		var log []models.AuditLogEntry
		if _, err = s.bridge.Load(ctx, key, &log); err == nil {
			s.auditLog = log
		}
	case bridge.KeyChatMessages:
		var messages []models.ChatMessage
		if _, err = s.bridge.Load(ctx, key, &messages); err == nil {
			s.chatMessages = messages
		}
	default:
		return
	}
	if err != nil {
		slog.Warn("failed to load collection, using empty default", "key", key, "error", err)
	}
}

// persist saves the named collections through the bridge. Persistence errors
// are diagnostic only and never surface to the caller; the in-memory state
// is already committed.
func (s *Store) persist(ctx context.Context, keys ...string) {
	for _, key := range keys {
		var err error
		switch key {
		case bridge.KeyUsers:
			err = s.bridge.Save(ctx, key, s.users)
		case bridge.KeyUploads:
			err = s.bridge.Save(ctx, key, s.uploads)
		case bridge.KeyAuditLog:
			err = s.bridge.Save(ctx, key, s.auditLog)
		case bridge.KeyChatMessages:
			err = s.bridge.Save(ctx, key, s.chatMessages)
		}
		if err != nil {
			slog.Error("failed to persist collection", "key", key, "error", err)
		}
	}
}

// SeedOwner creates a single owner account when the user collection is
// empty. Used at startup to bootstrap a fresh deployment.
func (s *Store) SeedOwner(ctx context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users) > 0 {
		return nil
	}
	if !validUsername(username) {
		return ErrInvalidUsername
	}
	if password == "" {
		return ErrMissingPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	s.users = append(s.users, models.User{
		ID:           nextID(maxUserID(s.users)),
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleOwner,
		CreatedAt:    time.Now().UTC(),
	})
	s.persist(ctx, bridge.KeyUsers)
	return nil
}

// Users returns a copy of the user collection.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

// Uploads returns a copy of the upload collection, most-recent-first.
func (s *Store) Uploads() []models.Upload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.uploads)
}

// PendingUploads returns the uploads awaiting moderation, most-recent-first.
func (s *Store) PendingUploads() []models.Upload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var pending []models.Upload
	for _, u := range s.uploads {
		if u.Pending() {
			pending = append(pending, u)
		}
	}
	return pending
}

// AuditLog returns a copy of the audit log, most-recent-first.
func (s *Store) AuditLog() []models.AuditLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.auditLog)
}

// ChatMessages returns a copy of the chat history in posting order.
func (s *Store) ChatMessages() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.chatMessages)
}

// UserByID retrieves a user by id.
func (s *Store) UserByID(id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOfUser(id)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	u := s.users[i]
	return &u, nil
}

// UserByUsername retrieves a user by username, case-insensitively.
func (s *Store) UserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// indexOfUser returns the position of the user with id, or -1. Caller must
// hold the lock.
func (s *Store) indexOfUser(id int64) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

// indexOfUpload returns the position of the upload with id, or -1. Caller
// must hold the lock.
func (s *Store) indexOfUpload(id int64) int {
	for i := range s.uploads {
		if s.uploads[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID returns a time-derived id strictly greater than prev, so ids stay
// monotonic even when two operations land in the same millisecond.
func nextID(prev int64) int64 {
	id := time.Now().UnixMilli()
	if id <= prev {
		id = prev + 1
	}
	return id
}

func maxUserID(users []models.User) int64 {
	var max int64
	for _, u := range users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max
}

func maxUploadID(uploads []models.Upload) int64 {
	var max int64
	for _, u := range uploads {
		if u.ID > max {
			max = u.ID
		}
	}
	return max
}

func maxMessageID(messages []models.ChatMessage) int64 {
	var max int64
	for _, m := range messages {
		if m.ID > max {
			max = m.ID
		}
	}
	return max
}
