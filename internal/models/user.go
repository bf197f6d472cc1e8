package models

import (
	"time"

	"github.com/google/uuid"
)

// Role constants
const (
	RolePublisher  = "publisher"
	RoleAdvertiser = "advertiser"
	RoleAdmin      = "admin"
)

// User represents a marketplace account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"` // publisher, advertiser, admin
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user reviews publisher requests.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsPublisher returns true if the user can list websites.
func (u *User) IsPublisher() bool {
	return u.Role == RolePublisher
}

// IsAdvertiser returns true if the user browses the marketplace.
func (u *User) IsAdvertiser() bool {
	return u.Role == RoleAdvertiser
}
