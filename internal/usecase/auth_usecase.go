package usecase

import (
	"context"

	"accounts/internal/domain/entity"
)

// RegisterInput is a self-service sign-up.
type RegisterInput struct {
	Name            string
	Email           string
	Username        string
	Password        string
	PasswordConfirm string
	Phone           string
}

// LoginInput identifies an account by username or email.
type LoginInput struct {
	Identifier string
	Password   string
}

// AuthUsecase covers sign-up and login. Neither touches session state.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.Account, error)
	Login(ctx context.Context, input *LoginInput) (*entity.Account, error)
}
