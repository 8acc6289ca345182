package impl

import (
	"context"
	"log/slog"
	"strings"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
	"accounts/internal/errors"
	"accounts/internal/usecase"

	"github.com/google/uuid"
)

type profileService struct {
	accounts          usecase.AccountUsecase
	hasher            service.PasswordHasher
	minPasswordLength int
	logger            *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(
	accounts usecase.AccountUsecase,
	hasher service.PasswordHasher,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		accounts:          accounts,
		hasher:            hasher,
		minPasswordLength: cfg.Auth.MinPasswordLength,
		logger:            logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *profileService) GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	return srv.accounts.GetAccount(ctx, accountID)
}

// UpdateProfile replaces the self-editable fields. Active state and password are
// not reachable from here.
func (srv *profileService) UpdateProfile(ctx context.Context, accountID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	if input == nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("input is required"))
	}

	return srv.accounts.UpdateAccount(ctx, accountID, &usecase.UpdateAccountInput{
		Name:     &input.Name,
		Email:    &input.Email,
		Username: &input.Username,
		Phone:    &input.Phone,
	})
}

func (srv *profileService) ChangePassword(ctx context.Context, accountID uuid.UUID, input *usecase.ChangePasswordInput) error {
	if input == nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("input is required"))
	}

	account, err := srv.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}

	if !srv.hasher.Check(input.CurrentPassword, account.PasswordHash) {
		srv.log(ctx).Info("Password change rejected: current password incorrect",
			slog.String("account_id", accountID.String()),
		)

		return errors.WithStack(domainerrors.ErrCurrentPasswordIncorrect)
	}
	if err := requireFields(requiredField{"new_password", strings.TrimSpace(input.NewPassword)}); err != nil {
		return err
	}
	if err := checkPasswordLength(input.NewPassword, srv.minPasswordLength); err != nil {
		return err
	}
	if input.NewPassword != input.ConfirmPassword {
		return errors.WithStack(domainerrors.ErrPasswordMismatch)
	}

	newPassword := input.NewPassword
	if _, err := srv.accounts.UpdateAccount(ctx, accountID, &usecase.UpdateAccountInput{Password: &newPassword}); err != nil {
		return err
	}

	srv.log(ctx).Info("Password changed", slog.String("account_id", accountID.String()))

	return nil
}
