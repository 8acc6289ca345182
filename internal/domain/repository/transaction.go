package repository

import "context"

// TransactionManager runs a unit of work inside a single database transaction.
// The transaction is rolled back when fn returns an error or panics.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the current transaction.
type RepositoryFactory interface {
	AccountRepo() AccountRepository
}
