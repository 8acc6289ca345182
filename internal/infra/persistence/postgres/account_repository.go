package postgres

import (
	"context"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/errors"
	"accounts/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// accountMutableColumns are written by Update. id and created_at never change.
var accountMutableColumns = []string{
	"name", "email", "username", "password_hash", "phone", "is_active", "updated_at",
}

type accountRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{
		db:  db,
		// timestamptz keeps microseconds; truncating keeps returned values equal to stored ones.
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return repo.findOne(repo.db.WithContext(ctx).Where("id = ?", id), "find account by id")
}

func (repo *accountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	query := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id)

	return repo.findOne(query, "lock account by id")
}

func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return repo.findOne(repo.db.WithContext(ctx).Where("email = ?", email), "find account by email")
}

func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	return repo.findOne(repo.db.WithContext(ctx).Where("username = ?", username), "find account by username")
}

func (repo *accountRepository) findOne(query *gorm.DB, op string) (*entity.Account, error) {
	var m model.AccountModel
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrAccountNotFound)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, op)
	}

	return toAccountDomain(&m), nil
}

func (repo *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return repo.exists(repo.db.WithContext(ctx).Where("email = ?", email), "check email")
}

func (repo *accountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return repo.exists(repo.db.WithContext(ctx).Where("username = ?", username), "check username")
}

func (repo *accountRepository) ExistsByEmailExcludingID(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	return repo.exists(repo.db.WithContext(ctx).Where("email = ? AND id <> ?", email, id), "check email excluding id")
}

func (repo *accountRepository) ExistsByUsernameExcludingID(ctx context.Context, username string, id uuid.UUID) (bool, error) {
	return repo.exists(repo.db.WithContext(ctx).Where("username = ? AND id <> ?", username, id), "check username excluding id")
}

func (repo *accountRepository) exists(query *gorm.DB, op string) (bool, error) {
	var count int64
	if err := query.Model(&model.AccountModel{}).Count(&count).Error; err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, op)
	}

	return count > 0, nil
}

func (repo *accountRepository) ListPaged(ctx context.Context, page, pageSize int) ([]*entity.Account, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.AccountModel{}).Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "count accounts for listing")
	}

	var models []model.AccountModel
	err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "list accounts")
	}

	return toAccountDomains(models), total, nil
}

func (repo *accountRepository) ListActive(ctx context.Context) ([]*entity.Account, error) {
	var models []model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "list active accounts")
	}

	return toAccountDomains(models), nil
}

func (repo *accountRepository) Count(ctx context.Context) (int64, error) {
	return repo.count(repo.db.WithContext(ctx), "count accounts")
}

func (repo *accountRepository) CountActive(ctx context.Context) (int64, error) {
	return repo.count(repo.db.WithContext(ctx).Where("is_active = ?", true), "count active accounts")
}

func (repo *accountRepository) CountCreatedBetween(ctx context.Context, start, endExclusive time.Time) (int64, error) {
	query := repo.db.WithContext(ctx).Where("created_at >= ? AND created_at < ?", start, endExclusive)

	return repo.count(query, "count accounts created in range")
}

func (repo *accountRepository) count(query *gorm.DB, op string) (int64, error) {
	var count int64
	if err := query.Model(&model.AccountModel{}).Count(&count).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, op)
	}

	return count, nil
}

func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate account id")
		}
		account.ID = id
	}

	now := repo.now()
	account.CreatedAt = now
	account.UpdatedAt = now

	m := fromAccountDomain(account)
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		return repo.translateWriteError(ctx, err, account, "create account")
	}

	return nil
}

func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	updatedAt := repo.now()
	if updatedAt.Before(account.CreatedAt) {
		updatedAt = account.CreatedAt
	}

	m := fromAccountDomain(account)
	m.UpdatedAt = updatedAt

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Select(accountMutableColumns).
		Updates(m)
	if result.Error != nil {
		return repo.translateWriteError(ctx, result.Error, account, "update account")
	}
	if result.RowsAffected == 0 {
		return errors.WithStack(repository.ErrAccountNotFound)
	}

	account.UpdatedAt = updatedAt

	return nil
}

func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AccountModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "delete account")
	}
	if result.RowsAffected == 0 {
		return errors.WithStack(repository.ErrAccountNotFound)
	}

	return nil
}

// translateWriteError maps constraint violations onto domain errors. When the
// violated constraint is not identifiable, it asks the database which column collides.
func (repo *accountRepository) translateWriteError(ctx context.Context, err error, account *entity.Account, op string) error {
	switch classifyUniqueViolation(err) {
	case duplicateEmail:
		return domainerrors.ErrDuplicateEmail.WrapMessage(op)
	case duplicateUsername:
		return domainerrors.ErrDuplicateUsername.WrapMessage(op)
	case duplicateUnknown:
		return repo.disambiguateDuplicate(ctx, err, account, op)
	case duplicateNone:
	}

	if isNotNullConstraintViolation(err) {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("required field missing"), op)
	}

	return domainerrors.NewDatabaseExecuteError(err, op)
}

func (repo *accountRepository) disambiguateDuplicate(ctx context.Context, cause error, account *entity.Account, op string) error {
	// Inside an aborted transaction the probes fail as well and the original error is reported.
	probe := repo.db.Session(&gorm.Session{NewDB: true, Context: ctx})

	var taken int64
	err := probe.Model(&model.AccountModel{}).
		Where("email = ? AND id <> ?", account.Email, account.ID).
		Count(&taken).Error
	if err == nil && taken > 0 {
		return domainerrors.ErrDuplicateEmail.WrapMessage(op)
	}

	err = probe.Model(&model.AccountModel{}).
		Where("username = ? AND id <> ?", account.Username, account.ID).
		Count(&taken).Error
	if err == nil && taken > 0 {
		return domainerrors.ErrDuplicateUsername.WrapMessage(op)
	}

	return domainerrors.NewDatabaseExecuteError(cause, op)
}

func toAccountDomain(m *model.AccountModel) *entity.Account {
	if m == nil {
		return nil
	}

	return &entity.Account{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Phone:        m.Phone,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toAccountDomains(models []model.AccountModel) []*entity.Account {
	accounts := make([]*entity.Account, 0, len(models))
	for i := range models {
		accounts = append(accounts, toAccountDomain(&models[i]))
	}

	return accounts
}

func fromAccountDomain(a *entity.Account) *model.AccountModel {
	if a == nil {
		return nil
	}

	return &model.AccountModel{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		Phone:        a.Phone,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
