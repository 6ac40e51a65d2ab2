package services

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
)

// LedgerQuerySvcFacade exposes read access to posted ledger data for
// operators and collaborating services.
type LedgerQuerySvcFacade interface {
	// GetTransaction retrieves a ledger transaction with its entries.
	GetTransaction(ctx context.Context, transactionID string) (*domain.LedgerTransaction, []domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves a cursor-paginated page of entries for an
	// account, newest first.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// GetPayment retrieves a payment together with the ledger transactions
	// posted for it.
	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, []domain.LedgerTransaction, error)

	// GetRefund retrieves a refund record.
	GetRefund(ctx context.Context, refundID string) (*domain.Refund, error)

	// GetPayout retrieves a payout with its settled payment and refund ids.
	GetPayout(ctx context.Context, payoutID string) (*domain.Payout, error)
}
