// Package usecase defines the application's operations and their input/output DTOs.
package usecase

import (
	"context"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateAccountInput carries a new account. Phone and IsActive are optional.
type CreateAccountInput struct {
	Name     string
	Email    string
	Username string
	Password string
	Phone    *string
	IsActive *bool
}

// UpdateAccountInput is a partial update: nil leaves a field untouched.
// A present but blank Password also leaves the stored hash untouched.
type UpdateAccountInput struct {
	Name     *string
	Email    *string
	Username *string
	Password *string
	Phone    *string
	IsActive *bool
}

// ListAccountsInput selects one page of accounts, newest first.
type ListAccountsInput struct {
	Page    int
	PerPage int
}

// ListAccountsOutput is one page of accounts.
type ListAccountsOutput struct {
	Accounts   []*entity.Account `json:"accounts"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// AccountUsecase is the account lifecycle and authentication service.
// Every error it returns carries a domainerrors code.
type AccountUsecase interface {
	CreateAccount(ctx context.Context, input *CreateAccountInput) (*entity.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	ListAccounts(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error)
	ListActiveAccounts(ctx context.Context) ([]*entity.Account, error)
	CountAccounts(ctx context.Context) (int64, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, input *UpdateAccountInput) (*entity.Account, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	ToggleActive(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	// Authenticate resolves identifier as a username first, then as an email.
	Authenticate(ctx context.Context, identifier, password string) (*entity.Account, error)
}
