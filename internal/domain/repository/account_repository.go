package repository

import (
	"context"
	"time"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrAccountNotFound is returned when a lookup, update or delete matches no account.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository is the persistence contract for accounts. Unique-constraint
// violations on write are reported as domainerrors.ErrDuplicateEmail or
// domainerrors.ErrDuplicateUsername.
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmailExcludingID(ctx context.Context, email string, id uuid.UUID) (bool, error)
	ExistsByUsernameExcludingID(ctx context.Context, username string, id uuid.UUID) (bool, error)

	// ListPaged returns one page ordered by creation time, newest first, and the total count.
	ListPaged(ctx context.Context, page, pageSize int) ([]*entity.Account, int64, error)
	ListActive(ctx context.Context) ([]*entity.Account, error)

	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountCreatedBetween(ctx context.Context, start, endExclusive time.Time) (int64, error)

	// Create inserts the account and fills in ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, account *entity.Account) error
	// Update writes every mutable column and refreshes UpdatedAt.
	Update(ctx context.Context, account *entity.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
}
