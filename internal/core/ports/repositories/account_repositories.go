package repositories

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error)

	// FindAccountByName retrieves an account by its exact name.
	FindAccountByName(ctx context.Context, name string) (*domain.LedgerAccount, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.LedgerAccount, error)

	// ListAccounts retrieves the full chart of accounts.
	ListAccounts(ctx context.Context) ([]domain.LedgerAccount, error)
}

// AccountWriter defines write operations for the chart of accounts. Accounts
// are only written during bootstrap seeding; there is no update or delete.
type AccountWriter interface {
	// SaveAccount persists a new account. Inserting a duplicate
	// (account_type, name) pair fails with ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.LedgerAccount) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
