package models

import "testing"

func TestRoleTierOrdering(t *testing.T) {
	if !(RoleTier(RoleUser) < RoleTier(RoleAdmin) &&
		RoleTier(RoleAdmin) < RoleTier(RoleCoOwner) &&
		RoleTier(RoleCoOwner) < RoleTier(RoleOwner)) {
		t.Fatal("role tiers are not strictly ordered user < admin < co-owner < owner")
	}
	if RoleTier("super-duper-admin") != -1 {
		t.Errorf("unknown role tier = %d, want -1", RoleTier("super-duper-admin"))
	}
}

func TestRoleHelpers(t *testing.T) {
	tests := []struct {
		role        string
		isModerator bool
		isCoOwner   bool
		isOwner     bool
	}{
		{RoleUser, false, false, false},
		{RoleAdmin, true, false, false},
		{RoleCoOwner, true, true, false},
		{RoleOwner, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			u := &User{Role: tt.role}
			if got := u.IsModerator(); got != tt.isModerator {
				t.Errorf("IsModerator() = %v, want %v", got, tt.isModerator)
			}
			if got := u.IsCoOwner(); got != tt.isCoOwner {
				t.Errorf("IsCoOwner() = %v, want %v", got, tt.isCoOwner)
			}
			if got := u.IsOwner(); got != tt.isOwner {
				t.Errorf("IsOwner() = %v, want %v", got, tt.isOwner)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleUser, RoleAdmin, RoleCoOwner, RoleOwner} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "Owner", "superadmin"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true, want false", role)
		}
	}
}
