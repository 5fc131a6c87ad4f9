package store

import (
	"context"
	"errors"
	"testing"

	"linkhub/internal/models"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	user, err := s.Register(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("new account role = %q, want user", user.Role)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret" {
		t.Error("password was not hashed")
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	if _, err := s.Register(ctx, "alice", "secret"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"exact duplicate", "alice", "other", ErrDuplicateUsername},
		{"case-insensitive duplicate", "ALICE", "other", ErrDuplicateUsername},
		{"invalid username", "a", "other", ErrInvalidUsername},
		{"username with spaces", "bad name", "other", ErrInvalidUsername},
		{"missing password", "bob", "", ErrMissingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := counts(s)
			if _, err := s.Register(ctx, tt.username, tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if counts(s) != before {
				t.Error("failed registration mutated the store")
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	if _, err := s.Register(ctx, "alice", "secret"); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Authenticate("alice", "secret"); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}
	if _, err := s.Authenticate("Alice", "secret"); err != nil {
		t.Errorf("username lookup should be case-insensitive: %v", err)
	}
	if _, err := s.Authenticate("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want %v", err, ErrInvalidCredentials)
	}
	if _, err := s.Authenticate("nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: err = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestChangeUsernameCascades(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	bob := seedUser(s, 1, "bob", models.RoleUser)
	seedUser(s, 2, "carol", models.RoleAdmin)
	seedUpload(s, 10, "bobs.example.com", models.StatusPending, "bob")
	seedUpload(s, 11, "carols.example.com", models.StatusPending, "carol")

	if _, err := s.SendMessage(ctx, bob, "hello"); err != nil {
		t.Fatal(err)
	}
	s.mu.Lock()
	s.appendAuditLocked("bob", models.ActionApproved, &s.uploads[1])
	s.mu.Unlock()

	updated, err := s.ChangeUsername(ctx, bob, "robert")
	if err != nil {
		t.Fatalf("ChangeUsername: %v", err)
	}
	if updated.Username != "robert" {
		t.Errorf("Username = %q, want robert", updated.Username)
	}

	for _, u := range s.Uploads() {
		if u.SubmittedBy == "bob" {
			t.Errorf("upload %d still attributed to old name", u.ID)
		}
	}
	for _, m := range s.ChatMessages() {
		if m.Username == "bob" {
			t.Errorf("chat message %d still attributed to old name", m.ID)
		}
	}
	for i, e := range s.AuditLog() {
		if e.AdminUsername == "bob" {
			t.Errorf("audit entry %d still attributed to old name", i)
		}
	}

	// The cascade rewrites attribution, it never adds or removes records.
	if got := counts(s); got != [4]int{2, 2, 1, 1} {
		t.Errorf("counts after rename = %v, want [2 2 1 1]", got)
	}
	// Carol's records are untouched.
	if s.Uploads()[0].SubmittedBy != "carol" {
		t.Errorf("unrelated upload was rewritten: %+v", s.Uploads()[0])
	}
}

func TestChangeUsernameConflicts(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	bob := seedUser(s, 1, "bob", models.RoleUser)
	seedUser(s, 2, "carol", models.RoleUser)

	if _, err := s.ChangeUsername(ctx, bob, "CAROL"); !errors.Is(err, ErrDuplicateUsername) {
		t.Errorf("rename onto taken name: err = %v, want %v", err, ErrDuplicateUsername)
	}
	// Renaming to your own name in a different case is not a conflict.
	if _, err := s.ChangeUsername(ctx, bob, "Bob"); err != nil {
		t.Errorf("case-only self rename rejected: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	alice, err := s.Register(ctx, "alice", "secret")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.ChangePassword(ctx, alice, "newsecret"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := s.Authenticate("alice", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password still accepted")
	}
	if _, err := s.Authenticate("alice", "newsecret"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}

	if err := s.ChangePassword(ctx, alice, ""); !errors.Is(err, ErrMissingPassword) {
		t.Errorf("empty password: err = %v, want %v", err, ErrMissingPassword)
	}
}

func TestChangeRole(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	owner := seedUser(s, 1, "owner", models.RoleOwner)
	coowner := seedUser(s, 2, "carol", models.RoleCoOwner)
	bob := seedUser(s, 3, "bob", models.RoleUser)

	updated, err := s.ChangeRole(ctx, owner, bob.ID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("ChangeRole: %v", err)
	}
	if updated.Role != models.RoleAdmin {
		t.Errorf("Role = %q, want admin", updated.Role)
	}

	tests := []struct {
		name     string
		actor    *models.User
		targetID int64
		role     string
		wantErr  error
	}{
		{"unauthenticated", nil, bob.ID, models.RoleAdmin, ErrNotAuthenticated},
		{"co-owner cannot change roles", coowner, bob.ID, models.RoleAdmin, ErrPermissionDenied},
		{"owner cannot change own role", owner, owner.ID, models.RoleUser, ErrCannotChangeOwnRole},
		{"invalid role", owner, bob.ID, "superadmin", ErrInvalidRole},
		{"missing target", owner, 999, models.RoleAdmin, ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.ChangeRole(ctx, tt.actor, tt.targetID, tt.role); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	owner := seedUser(s, 1, "owner", models.RoleOwner)
	carol := seedUser(s, 2, "carol", models.RoleCoOwner)
	dave := seedUser(s, 3, "dave", models.RoleCoOwner)
	admin := seedUser(s, 4, "erin", models.RoleAdmin)
	bob := seedUser(s, 5, "bob", models.RoleUser)

	tests := []struct {
		name     string
		actor    *models.User
		targetID int64
		wantErr  error
	}{
		{"unauthenticated", nil, bob.ID, ErrNotAuthenticated},
		{"plain user cannot delete", bob, admin.ID, ErrPermissionDenied},
		{"admin cannot delete", admin, bob.ID, ErrPermissionDenied},
		{"nobody deletes the owner", carol, owner.ID, ErrCannotDeleteOwner},
		{"co-owner cannot delete a peer", carol, dave.ID, ErrCannotDeletePeer},
		{"missing target", owner, 999, ErrUserNotFound},
		{"co-owner deletes a lower tier", carol, bob.ID, nil},
		{"owner deletes a co-owner", owner, dave.ID, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted, err := s.DeleteUser(ctx, tt.actor, tt.targetID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil {
				if _, lookupErr := s.UserByID(deleted.ID); !errors.Is(lookupErr, ErrUserNotFound) {
					t.Errorf("deleted user %q still present", deleted.Username)
				}
			}
		})
	}
}

func TestDeleteUserKeepsHistoricalAttribution(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	owner := seedUser(s, 1, "owner", models.RoleOwner)
	bob := seedUser(s, 2, "bob", models.RoleUser)
	seedUpload(s, 10, "bobs.example.com", models.StatusApproved, "bob")

	if _, err := s.DeleteUser(ctx, owner, bob.ID); err != nil {
		t.Fatal(err)
	}
	uploads := s.Uploads()
	if len(uploads) != 1 || uploads[0].SubmittedBy != "bob" {
		t.Errorf("historical upload lost its attribution: %+v", uploads)
	}
}
