package model

import "time"

// User roles. Admin and manager may manage user accounts; a manager may
// not create, edit or delete admin users.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleStandard = "standard"
)

// ValidRole reports whether the given string is a known role.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleManager || r == RoleStandard
}

// User represents an application user record as stored in the `users`
// table. Only the bcrypt hash of the password is kept.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"` // unique
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"` // admin|manager|standard
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshToken models an entry in the `refresh_tokens` table. The plain
// token is not stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
