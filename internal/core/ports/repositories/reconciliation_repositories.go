package repositories

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
)

// ReconciliationRepository is the read-only query surface of the
// reconciliation engine. Every method is an aggregate query; the engine never
// loads the full entry store into memory.
type ReconciliationRepository interface {
	// ListPaymentAudits returns one aggregate row per payment with its derived
	// ledger transaction and entry sums.
	ListPaymentAudits(ctx context.Context) ([]domain.PaymentAudit, error)

	// ListRefundAudits returns one aggregate row per refund, including whether
	// the referenced payment still exists.
	ListRefundAudits(ctx context.Context) ([]domain.RefundAudit, error)

	// LedgerBalances returns grouped debit/credit sums per currency across the
	// entire entry store.
	LedgerBalances(ctx context.Context) ([]domain.CurrencyBalance, error)

	// AccountNetBalances returns, per account and currency, the signed net of
	// all entries. Used to explain imbalances.
	AccountNetBalances(ctx context.Context) ([]domain.AccountImbalance, error)

	// FindOrphanedEntries returns entries whose payment_id or refund_id
	// references no live payment/refund.
	FindOrphanedEntries(ctx context.Context) ([]domain.OrphanRecord, error)

	// FindOrphanedTransactions returns transactions with dangling
	// payment/refund references.
	FindOrphanedTransactions(ctx context.Context) ([]domain.OrphanRecord, error)

	// EntityPaymentTotals returns completed payment sums grouped by entity
	// category and currency.
	EntityPaymentTotals(ctx context.Context) ([]domain.EntityTotalRow, error)

	// ListRevenueEntries returns the revenue-account entries carrying an
	// entity tag. Rows may repeat an entry id; callers deduplicate before
	// summing.
	ListRevenueEntries(ctx context.Context) ([]domain.RevenueEntryRow, error)
}
