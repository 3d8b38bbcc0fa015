package models

import (
	"time"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered user. Accounts are created and authenticated
// by the external identity provider; this service only reads profiles.
type User struct {
	ID           string    `json:"_id" db:"id"`
	FullName     string    `json:"fullName" db:"full_name"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	ProfileImage string    `json:"profileImage" db:"profile_image"`
	FCMToken     string    `json:"-" db:"fcm_token"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicUser is the subset of a user profile embedded in post, comment and
// claim responses.
type PublicUser struct {
	ID           string `json:"_id,omitempty"`
	FullName     string `json:"fullName,omitempty"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
}

// PublicProfile returns the embeddable view of the user
func (u *User) PublicProfile() PublicUser {
	return PublicUser{
		ID:           u.ID,
		FullName:     u.FullName,
		Username:     u.Username,
		ProfileImage: u.ProfileImage,
	}
}
