package repositories

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
)

// LedgerWriter defines the append-only write path for ledger data. There are
// deliberately no update or delete methods: the storage layer additionally
// enforces immutability with triggers, so even a future caller holding raw
// SQL access cannot rewrite history.
type LedgerWriter interface {
	// SavePaymentPosting atomically upserts the payment record as completed
	// and inserts its transaction and balanced entries in one unit of work.
	// Nothing is visible unless every insert succeeds.
	SavePaymentPosting(ctx context.Context, payment domain.Payment, txn domain.LedgerTransaction, entries []domain.LedgerEntry) error

	// SaveRefundPosting atomically inserts the refund record, updates the
	// payment's status, and inserts the refund transaction and entries.
	SaveRefundPosting(ctx context.Context, refund domain.Refund, paymentStatus domain.PaymentStatus, txn domain.LedgerTransaction, entries []domain.LedgerEntry) error

	// SavePayoutPosting atomically inserts the payout record, its settlement
	// associations and the payout transaction with entries.
	SavePayoutPosting(ctx context.Context, payout domain.Payout, txn domain.LedgerTransaction, entries []domain.LedgerEntry) error
}

// LedgerReader defines read operations over transactions and entries.
type LedgerReader interface {
	// FindTransactionByID retrieves one ledger transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error)

	// FindEntriesByTransactionID retrieves all entries of one transaction.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)

	// FindTransactionsByPaymentID retrieves the transactions referencing a payment.
	FindTransactionsByPaymentID(ctx context.Context, paymentID string) ([]domain.LedgerTransaction, error)

	// ListEntriesByAccount retrieves a cursor-paginated list of entries for an
	// account, newest first. Returns the page, the next-page token and an error.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerRepositoryFacade combines the ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerWriter
	LedgerReader
}

// LedgerRepositoryWithTx extends the facade with transaction management.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
