package model

import "time"

// Role grants access levels.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether role is known.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered customer or administrator.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate carries partial changes; nil fields stay untouched.
type UserUpdate struct {
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
	PasswordHash *string
	Role         *Role
	IsActive     *bool
}

// UserStats counts user activity.
type UserStats struct {
	OrdersCount  int
	ReviewsCount int
	LikesCount   int
}

// Profile combines user record with activity stats.
type Profile struct {
	User  User
	Stats UserStats
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID int64
	Role   Role
}

// IsAdmin reports whether principal holds administrative role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess reports whether principal may read a resource owned by ownerID.
func (p Principal) CanAccess(ownerID int64) bool {
	return p.IsAdmin() || p.UserID == ownerID
}
