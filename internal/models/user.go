package models

import (
	"time"
)

// User is the profile snapshot returned by the identity service.
// The locally cached copy is advisory only, the server stays the source
// of truth.
type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserUpdate carries optional profile changes for PUT /api/auth/me.
// Nil fields are omitted and left untouched server-side.
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Password *string `json:"password,omitempty"`
}
