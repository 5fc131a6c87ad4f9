package models

import "time"

// Role constants, ordered by privilege.
const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleCoOwner = "co-owner"
	RoleOwner   = "owner"
)

// roleTiers maps each role to its privilege tier. Higher is more privileged.
var roleTiers = map[string]int{
	RoleUser:    0,
	RoleAdmin:   1,
	RoleCoOwner: 2,
	RoleOwner:   3,
}

// RoleTier returns the privilege tier for a role, or -1 for an unknown role.
func RoleTier(role string) int {
	if tier, ok := roleTiers[role]; ok {
		return tier
	}
	return -1
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	_, ok := roleTiers[role]
	return ok
}

// User is a registered account. Usernames are unique case-insensitively and
// are referenced by value from uploads, chat messages, and the audit log.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the API-safe view of a User, without credential material.
type PublicUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the user without credential material, for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Tier returns the user's privilege tier.
func (u *User) Tier() int {
	return RoleTier(u.Role)
}

// IsModerator returns true if the user can moderate uploads (admin and above).
func (u *User) IsModerator() bool {
	return u.Tier() >= roleTiers[RoleAdmin]
}

// IsCoOwner returns true if the user is a co-owner or owner.
func (u *User) IsCoOwner() bool {
	return u.Tier() >= roleTiers[RoleCoOwner]
}

// IsOwner returns true if the user holds the top privilege tier.
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}
