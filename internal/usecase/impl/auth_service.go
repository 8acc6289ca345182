package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/errors"
	"accounts/internal/usecase"
)

type authService struct {
	accounts          usecase.AccountUsecase
	minPasswordLength int
	logger            *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(accounts usecase.AccountUsecase, cfg *config.Config, logger *slog.Logger) usecase.AuthUsecase {
	return &authService{
		accounts:          accounts,
		minPasswordLength: cfg.Auth.MinPasswordLength,
		logger:            logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register checks the password confirmation and length, then creates an active account.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Account, error) {
	if input == nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("input is required"))
	}

	if input.Password != input.PasswordConfirm {
		return nil, errors.WithStack(domainerrors.ErrPasswordMismatch)
	}
	if err := checkPasswordLength(input.Password, srv.minPasswordLength); err != nil {
		return nil, err
	}

	phone := input.Phone
	account, err := srv.accounts.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name:     input.Name,
		Email:    input.Email,
		Username: input.Username,
		Password: input.Password,
		Phone:    &phone,
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Account registered", slog.String("account_id", account.ID.String()))

	return account, nil
}

// Login requires both fields before delegating to Authenticate.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*entity.Account, error) {
	if input == nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("input is required"))
	}

	identifier := strings.TrimSpace(input.Identifier)
	if err := requireFields(
		requiredField{"identifier", identifier},
		requiredField{"password", input.Password},
	); err != nil {
		return nil, err
	}

	account, err := srv.accounts.Authenticate(ctx, identifier, input.Password)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Account logged in", slog.String("account_id", account.ID.String()))

	return account, nil
}

// checkPasswordLength counts characters, not bytes.
func checkPasswordLength(password string, minLength int) error {
	if utf8.RuneCountInString(password) < minLength {
		return errors.WithStack(domainerrors.ErrPasswordTooShort.WithDetails(
			"password must be at least " + strconv.Itoa(minLength) + " characters",
		))
	}

	return nil
}
