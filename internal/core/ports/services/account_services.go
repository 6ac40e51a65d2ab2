package services

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
)

// AccountRegistrySvcFacade manages the fixed chart of accounts.
type AccountRegistrySvcFacade interface {
	// EnsureBasicAccounts idempotently creates the accounts the posting engine
	// requires. Safe to call repeatedly; never duplicates.
	EnsureBasicAccounts(ctx context.Context) error

	// GetAccountByName performs an exact name lookup. A missing account is a
	// fatal configuration error for the caller, not a recoverable one.
	GetAccountByName(ctx context.Context, name string) (*domain.LedgerAccount, error)

	// ListAccounts returns the full chart of accounts.
	ListAccounts(ctx context.Context) ([]domain.LedgerAccount, error)
}
