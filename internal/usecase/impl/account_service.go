// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/errors"
	"accounts/internal/usecase"
	"accounts/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type accountService struct {
	accountRepo repository.AccountRepository
	txManager   repository.TransactionManager
	hasher      service.PasswordHasher
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(
	accountRepo repository.AccountRepository,
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		accountRepo: accountRepo,
		txManager:   txManager,
		hasher:      hasher,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateAccount validates, checks uniqueness and stores a new account. The store's
// unique constraints catch registrations racing past the pre-checks.
func (srv *accountService) CreateAccount(ctx context.Context, input *usecase.CreateAccountInput) (*entity.Account, error) {
	if input == nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("input is required"))
	}

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	username := strings.TrimSpace(input.Username)
	var phone string
	if input.Phone != nil {
		phone = strings.TrimSpace(*input.Phone)
	}

	if err := requireFields(
		requiredField{"name", name},
		requiredField{"email", email},
		requiredField{"username", username},
		requiredField{"password", strings.TrimSpace(input.Password)},
	); err != nil {
		return nil, err
	}
	if err := checkLengths(
		boundedField{"name", name, entity.MaxNameLength},
		boundedField{"email", email, entity.MaxEmailLength},
		boundedField{"username", username, entity.MaxUsernameLength},
		boundedField{"phone", phone, entity.MaxPhoneLength},
	); err != nil {
		return nil, err
	}
	if err := srv.checkEmailFormat(email); err != nil {
		return nil, err
	}

	taken, err := srv.accountRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, domainerrors.AsStorageError(err, "check email")
	}
	if taken {
		return nil, errors.WithStack(domainerrors.ErrDuplicateEmail)
	}

	taken, err = srv.accountRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, domainerrors.AsStorageError(err, "check username")
	}
	if taken {
		return nil, errors.WithStack(domainerrors.ErrDuplicateUsername)
	}

	hash, err := srv.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := &entity.Account{
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Phone:        phone,
		IsActive:     true,
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		return nil, domainerrors.AsStorageError(err, "create account")
	}

	srv.log(ctx).Info("Account created",
		slog.String("account_id", account.ID.String()),
		slog.String("username", account.Username),
	)

	return account, nil
}

// GetAccount returns the account with the given id.
func (srv *accountService) GetAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "find account")
	}

	return account, nil
}

// ListAccounts returns one page of accounts, newest first.
func (srv *accountService) ListAccounts(ctx context.Context, input *usecase.ListAccountsInput) (*usecase.ListAccountsOutput, error) {
	var page, perPage int
	if input != nil {
		page, perPage = input.Page, input.PerPage
	}
	page, perPage = util.NormalizePage(page, perPage)

	accounts, total, err := srv.accountRepo.ListPaged(ctx, page, perPage)
	if err != nil {
		return nil, domainerrors.AsStorageError(err, "list accounts")
	}

	return &usecase.ListAccountsOutput{
		Accounts:   accounts,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: util.TotalPages(total, perPage),
	}, nil
}

// ListActiveAccounts returns every active account, newest first.
func (srv *accountService) ListActiveAccounts(ctx context.Context) ([]*entity.Account, error) {
	accounts, err := srv.accountRepo.ListActive(ctx)
	if err != nil {
		return nil, domainerrors.AsStorageError(err, "list active accounts")
	}

	return accounts, nil
}

// CountAccounts returns the number of stored accounts.
func (srv *accountService) CountAccounts(ctx context.Context) (int64, error) {
	count, err := srv.accountRepo.Count(ctx)
	if err != nil {
		return 0, domainerrors.AsStorageError(err, "count accounts")
	}

	return count, nil
}

// UpdateAccount applies a partial update under a row lock. Every check runs before the
// single write, so a failed update leaves the account untouched.
func (srv *accountService) UpdateAccount(ctx context.Context, id uuid.UUID, input *usecase.UpdateAccountInput) (*entity.Account, error) {
	if input == nil {
		input = &usecase.UpdateAccountInput{}
	}

	var updated *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return lookupError(err, "find account for update")
		}

		if err := srv.applyUpdate(ctx, accountRepo, account, input); err != nil {
			return err
		}

		if err := accountRepo.Update(ctx, account); err != nil {
			return lookupError(err, "update account")
		}
		updated = account

		return nil
	})
	if err != nil {
		return nil, domainerrors.AsStorageError(err, "update account")
	}

	srv.log(ctx).Info("Account updated",
		slog.String("account_id", id.String()),
		slog.Bool("password_changed", passwordPresent(input.Password)),
	)

	return updated, nil
}

func (srv *accountService) applyUpdate(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	account *entity.Account,
	input *usecase.UpdateAccountInput,
) error {
	name, err := trimmedNonBlank("name", input.Name, entity.MaxNameLength)
	if err != nil {
		return err
	}
	email, err := trimmedNonBlank("email", input.Email, entity.MaxEmailLength)
	if err != nil {
		return err
	}
	if email != nil {
		if err := srv.checkEmailFormat(*email); err != nil {
			return err
		}
	}
	username, err := trimmedNonBlank("username", input.Username, entity.MaxUsernameLength)
	if err != nil {
		return err
	}
	var phone *string
	if input.Phone != nil {
		trimmed := strings.TrimSpace(*input.Phone)
		if err := checkLengths(boundedField{"phone", trimmed, entity.MaxPhoneLength}); err != nil {
			return err
		}
		phone = &trimmed
	}

	if email != nil && *email != account.Email {
		taken, err := accountRepo.ExistsByEmailExcludingID(ctx, *email, account.ID)
		if err != nil {
			return domainerrors.AsStorageError(err, "check email")
		}
		if taken {
			return errors.WithStack(domainerrors.ErrDuplicateEmail)
		}
	}

	if username != nil && *username != account.Username {
		taken, err := accountRepo.ExistsByUsernameExcludingID(ctx, *username, account.ID)
		if err != nil {
			return domainerrors.AsStorageError(err, "check username")
		}
		if taken {
			return errors.WithStack(domainerrors.ErrDuplicateUsername)
		}
	}

	var hash string
	if passwordPresent(input.Password) {
		hash, err = srv.hashPassword(*input.Password)
		if err != nil {
			return err
		}
	}

	if name != nil {
		account.Name = *name
	}
	if email != nil {
		account.Email = *email
	}
	if username != nil {
		account.Username = *username
	}
	if phone != nil {
		account.Phone = *phone
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}
	if hash != "" {
		account.PasswordHash = hash
	}

	return nil
}

// DeleteAccount hard-deletes the account.
func (srv *accountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := srv.accountRepo.Delete(ctx, id); err != nil {
		return lookupError(err, "delete account")
	}

	srv.log(ctx).Info("Account deleted", slog.String("account_id", id.String()))

	return nil
}

// ToggleActive flips the active flag under a row lock.
func (srv *accountService) ToggleActive(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var toggled *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return lookupError(err, "find account for toggle")
		}

		account.Toggle()
		if err := accountRepo.Update(ctx, account); err != nil {
			return lookupError(err, "toggle account")
		}
		toggled = account

		return nil
	})
	if err != nil {
		return nil, domainerrors.AsStorageError(err, "toggle account")
	}

	srv.log(ctx).Info("Account status toggled",
		slog.String("account_id", id.String()),
		slog.Bool("is_active", toggled.IsActive),
	)

	return toggled, nil
}

// Authenticate checks the username first and falls back to the email. Inactive
// accounts are reported before the password is checked.
func (srv *accountService) Authenticate(ctx context.Context, identifier, password string) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByUsername(ctx, identifier)
	if errors.Is(err, repository.ErrAccountNotFound) {
		account, err = srv.accountRepo.FindByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Info("Login rejected: unknown identifier")

			return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
		}

		return nil, domainerrors.AsStorageError(err, "find account for login")
	}

	if !account.IsActive {
		srv.log(ctx).Info("Login rejected: account inactive", slog.String("account_id", account.ID.String()))

		return nil, errors.WithStack(domainerrors.ErrAccountInactive)
	}

	if !srv.hasher.Check(password, account.PasswordHash) {
		srv.log(ctx).Info("Login rejected: wrong password", slog.String("account_id", account.ID.String()))

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	return account, nil
}

func (srv *accountService) checkEmailFormat(email string) error {
	if err := srv.validate.Var(email, "email"); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("email format is invalid"))
	}

	return nil
}

func (srv *accountService) hashPassword(password string) (string, error) {
	hash, err := srv.hasher.Hash(password)
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return "", err
		}

		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return hash, nil
}

type requiredField struct {
	name  string
	value string
}

// requireFields reports the first blank field.
func requireFields(fields ...requiredField) error {
	for _, f := range fields {
		if f.value == "" {
			return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(f.name + " is required"))
		}
	}

	return nil
}

type boundedField struct {
	name  string
	value string
	limit int
}

// checkLengths reports the first field longer than its limit.
func checkLengths(fields ...boundedField) error {
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > f.limit {
			return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(
				fmt.Sprintf("%s must be at most %d characters", f.name, f.limit)))
		}
	}

	return nil
}

// trimmedNonBlank returns nil for an absent field and rejects a present blank or
// over-long one.
func trimmedNonBlank(field string, value *string, maxLen int) (*string, error) {
	if value == nil {
		return nil, nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(field + " must not be blank"))
	}
	if err := checkLengths(boundedField{field, trimmed, maxLen}); err != nil {
		return nil, err
	}

	return &trimmed, nil
}

func passwordPresent(password *string) bool {
	return password != nil && strings.TrimSpace(*password) != ""
}

// lookupError maps a missing row to ErrAccountNotFound and anything else to a storage error.
func lookupError(err error, op string) error {
	if errors.Is(err, repository.ErrAccountNotFound) {
		return errors.Wrap(domainerrors.ErrAccountNotFound, op)
	}

	return domainerrors.AsStorageError(err, op)
}
