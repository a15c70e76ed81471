package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Name        string     `json:"name" db:"name" example:"Asha Verma"`
	Email       string     `json:"email" db:"email" example:"asha@example.com"`
	Password    string     `json:"-" db:"password"` // bcrypt hash, never serialized
	Phone       string     `json:"phone" db:"phone" example:"9876543210"`
	RoleType    RoleType   `json:"role" db:"role_type" example:"user"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Principal returns the access-guard view of the user.
func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Role: u.RoleType}
}
