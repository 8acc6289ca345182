package entity

import (
	"time"

	"github.com/google/uuid"
)

// Field limits in characters, matching the store's column widths.
const (
	MaxNameLength     = 100
	MaxEmailLength    = 120
	MaxUsernameLength = 80
	MaxPhoneLength    = 20
)

// Account is a registered identity with credentials and profile fields.
// PasswordHash never leaves the process in serialized form.
type Account struct {
	ID           uuid.UUID `json:"id"`         // Assigned by the store on creation
	Name         string    `json:"name"`       // Display name
	Email        string    `json:"email"`      // Unique, case-sensitive as stored
	Username     string    `json:"username"`   // Unique login handle
	PasswordHash string    `json:"-"`          // bcrypt hash
	Phone        string    `json:"phone"`      // Empty when not provided
	IsActive     bool      `json:"is_active"`  // Inactive accounts cannot log in
	CreatedAt    time.Time `json:"created_at"` // Set once
	UpdatedAt    time.Time `json:"updated_at"` // Refreshed on every write
}

// Toggle flips the active flag and returns the new value.
func (a *Account) Toggle() bool {
	a.IsActive = !a.IsActive

	return a.IsActive
}
