package services

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
)

// ReconciliationSvcFacade is the read-only auditor. It never writes ledger
// data; discrepancies are report findings, not errors. Only an engine-level
// fault (store unreachable) returns a non-nil error.
type ReconciliationSvcFacade interface {
	// ReconcilePayments audits every payment against its derived ledger state.
	ReconcilePayments(ctx context.Context) domain.PaymentsCheckResult

	// ReconcileRefunds audits every refund, including the referential check
	// that its payment still exists.
	ReconcileRefunds(ctx context.Context) domain.RefundsCheckResult

	// CheckLedgerBalance verifies sum(debits) == sum(credits) per currency
	// across the entire entry store.
	CheckLedgerBalance(ctx context.Context) domain.LedgerBalanceResult

	// CheckOrphanedEntries finds entries and transactions whose payment or
	// refund reference points at nothing.
	CheckOrphanedEntries(ctx context.Context) domain.OrphansCheckResult

	// ReconcileEntityTotals compares ledger sums against completed payment
	// totals per entity category.
	ReconcileEntityTotals(ctx context.Context) domain.EntityTotalsResult

	// RunFullReconciliation orchestrates all checks, wraps them with timing
	// and emits a telemetry event on completion.
	RunFullReconciliation(ctx context.Context) domain.ReconciliationReport

	// FormatReport renders a human-readable summary of a report.
	// Presentation only; no business logic.
	FormatReport(report domain.ReconciliationReport) string
}
