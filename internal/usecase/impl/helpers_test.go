package impl

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"accounts/config"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/errors"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        4,
			MinPasswordLength: 6,
		},
		Dashboard: &config.DashboardConfig{
			Timezone:   "UTC",
			MonthsBack: 6,
		},
	}
}

// prefixHasher is a reversible stand-in for bcrypt.
type prefixHasher struct{}

func (prefixHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (prefixHasher) Check(password, hash string) bool {
	return strings.TrimPrefix(hash, "hashed:") == password && strings.HasPrefix(hash, "hashed:")
}

// memoryAccountRepo keeps accounts in a map and enforces the unique columns the
// way the database constraints do.
type memoryAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]entity.Account
	now      func() time.Time
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{
		accounts: make(map[uuid.UUID]entity.Account),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// seed stores the account as given, timestamps included.
func (r *memoryAccountRepo) seed(account entity.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.accounts[account.ID] = account
}

func (r *memoryAccountRepo) find(match func(entity.Account) bool) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if match(a) {
			found := a

			return &found, nil
		}
	}

	return nil, errors.WithStack(repository.ErrAccountNotFound)
}

func (r *memoryAccountRepo) count(match func(entity.Account) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, a := range r.accounts {
		if match(a) {
			n++
		}
	}

	return n
}

func (r *memoryAccountRepo) sorted(match func(entity.Account) bool) []*entity.Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		if match(a) {
			found := a
			out = append(out, &found)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Account) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out
}

func (r *memoryAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	return r.find(func(a entity.Account) bool { return a.ID == id })
}

func (r *memoryAccountRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return r.FindByID(ctx, id)
}

func (r *memoryAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	return r.find(func(a entity.Account) bool { return a.Email == email })
}

func (r *memoryAccountRepo) FindByUsername(_ context.Context, username string) (*entity.Account, error) {
	return r.find(func(a entity.Account) bool { return a.Username == username })
}

func (r *memoryAccountRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return r.count(func(a entity.Account) bool { return a.Email == email }) > 0, nil
}

func (r *memoryAccountRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	return r.count(func(a entity.Account) bool { return a.Username == username }) > 0, nil
}

func (r *memoryAccountRepo) ExistsByEmailExcludingID(_ context.Context, email string, id uuid.UUID) (bool, error) {
	return r.count(func(a entity.Account) bool { return a.Email == email && a.ID != id }) > 0, nil
}

func (r *memoryAccountRepo) ExistsByUsernameExcludingID(_ context.Context, username string, id uuid.UUID) (bool, error) {
	return r.count(func(a entity.Account) bool { return a.Username == username && a.ID != id }) > 0, nil
}

func (r *memoryAccountRepo) ListPaged(_ context.Context, page, pageSize int) ([]*entity.Account, int64, error) {
	all := r.sorted(func(entity.Account) bool { return true })
	start := min((page-1)*pageSize, len(all))
	end := min(start+pageSize, len(all))

	return all[start:end], int64(len(all)), nil
}

func (r *memoryAccountRepo) ListActive(_ context.Context) ([]*entity.Account, error) {
	return r.sorted(func(a entity.Account) bool { return a.IsActive }), nil
}

func (r *memoryAccountRepo) Count(_ context.Context) (int64, error) {
	return r.count(func(entity.Account) bool { return true }), nil
}

func (r *memoryAccountRepo) CountActive(_ context.Context) (int64, error) {
	return r.count(func(a entity.Account) bool { return a.IsActive }), nil
}

func (r *memoryAccountRepo) CountCreatedBetween(_ context.Context, start, endExclusive time.Time) (int64, error) {
	return r.count(func(a entity.Account) bool {
		return !a.CreatedAt.Before(start) && a.CreatedAt.Before(endExclusive)
	}), nil
}

func (r *memoryAccountRepo) checkUnique(account *entity.Account) error {
	for _, a := range r.accounts {
		if a.ID == account.ID {
			continue
		}
		if a.Email == account.Email {
			return domainerrors.ErrDuplicateEmail.WrapMessage("memory")
		}
		if a.Username == account.Username {
			return domainerrors.ErrDuplicateUsername.WrapMessage("memory")
		}
	}

	return nil
}

func (r *memoryAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account.ID = uuid.New()
	if err := r.checkUnique(account); err != nil {
		return err
	}
	account.CreatedAt = r.now()
	account.UpdatedAt = account.CreatedAt
	r.accounts[account.ID] = *account

	return nil
}

func (r *memoryAccountRepo) Update(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		return errors.WithStack(repository.ErrAccountNotFound)
	}
	if err := r.checkUnique(account); err != nil {
		return err
	}
	account.UpdatedAt = r.now()
	r.accounts[account.ID] = *account

	return nil
}

func (r *memoryAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return errors.WithStack(repository.ErrAccountNotFound)
	}
	delete(r.accounts, id)

	return nil
}

type memoryTxManager struct {
	repo repository.AccountRepository
}

func (tm memoryTxManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	return fn(tm)
}

func (tm memoryTxManager) AccountRepo() repository.AccountRepository {
	return tm.repo
}

func newMemoryAccountService() (*accountService, *memoryAccountRepo) {
	repo := newMemoryAccountRepo()
	srv := NewAccountService(repo, memoryTxManager{repo: repo}, prefixHasher{}, newDiscardLogger())

	return srv.(*accountService), repo
}

func ptr[T any](v T) *T {
	return &v
}
