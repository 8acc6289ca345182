package usecase

import (
	"context"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput replaces the self-editable profile fields.
type UpdateProfileInput struct {
	Name     string
	Email    string
	Username string
	Phone    string
}

// ChangePasswordInput requires the current password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// ProfileUsecase is the signed-in account's self-service.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
	UpdateProfile(ctx context.Context, accountID uuid.UUID, input *UpdateProfileInput) (*entity.Account, error)
	ChangePassword(ctx context.Context, accountID uuid.UUID, input *ChangePasswordInput) error
}
