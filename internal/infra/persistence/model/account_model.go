package model

import (
	"time"

	"github.com/google/uuid"
)

// Constraint names shared with the migrations. Violations are mapped back to the
// offending column through them.
const (
	ConstraintAccountsEmail    = "uq_accounts_email"
	ConstraintAccountsUsername = "uq_accounts_username"
)

// AccountModel mirrors the 'accounts' table. IDs are generated by the repository (UUIDv7)
// so inserts never rely on a database default. IsActive and Phone carry no GORM default
// tag because GORM would skip their zero values on insert.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(120);not null;uniqueIndex:uq_accounts_email"`
	Username     string    `gorm:"type:varchar(80);not null;uniqueIndex:uq_accounts_username"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Phone        string    `gorm:"type:varchar(20);not null"`
	IsActive     bool      `gorm:"not null;index:idx_accounts_is_active"`
	CreatedAt    time.Time `gorm:"not null;index:idx_accounts_created_at"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
