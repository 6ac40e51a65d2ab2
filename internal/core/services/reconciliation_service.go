package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/utils"
)

// reconciliationService implements the ReconciliationSvcFacade interface.
// It only reads; every finding lands in the report, never in the store.
type reconciliationService struct {
	BaseService
	reconRepo portsrepo.ReconciliationRepository
	telemetry *utils.PosthogClientWrapper
}

// NewReconciliationService creates the reconciliation engine.
func NewReconciliationService(reconRepo portsrepo.ReconciliationRepository, telemetry *utils.PosthogClientWrapper) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		reconRepo: reconRepo,
		telemetry: telemetry,
	}
}

// Ensure reconciliationService implements the ReconciliationSvcFacade interface
var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// failureReason distinguishes a run that hit its deadline from one whose
// query genuinely failed.
func failureReason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ReasonTimeout
	}
	return domain.ReasonQueryFailed
}

// ReconcilePayments audits every payment against the transaction and entry
// aggregates the ledger derived for it.
func (s *reconciliationService) ReconcilePayments(ctx context.Context) domain.PaymentsCheckResult {
	result := domain.PaymentsCheckResult{
		Status:        domain.CheckOK,
		PaymentsTotal: map[string]int64{},
		LedgerTotal:   map[string]int64{},
		Discrepancies: []domain.Discrepancy{},
	}

	audits, err := s.reconRepo.ListPaymentAudits(ctx)
	if err != nil {
		s.LogError(ctx, err, "Payment reconciliation query failed")
		result.Status = domain.CheckError
		result.Reason = failureReason(err)
		return result
	}

	for _, a := range audits {
		result.TotalPayments++
		posted := a.Status == domain.PaymentCompleted ||
			a.Status == domain.PaymentPartiallyRefunded ||
			a.Status == domain.PaymentRefunded

		var issues []string
		if posted {
			result.PaymentsTotal[a.CurrencyCode] += a.Amount
			result.LedgerTotal[a.CurrencyCode] += a.TransactionTotal
			if a.TransactionCount == 0 {
				issues = append(issues, "no ledger transaction")
			}
			if a.TransactionCount > 1 {
				issues = append(issues, fmt.Sprintf("expected one payment transaction, found %d", a.TransactionCount))
			}
			if a.TransactionCount > 0 && a.TransactionTotal != a.Amount {
				issues = append(issues, fmt.Sprintf("transaction total %d does not match payment amount %d", a.TransactionTotal, a.Amount))
			}
			if a.EntryCount == 0 {
				issues = append(issues, "no ledger entries")
			}
			if a.EntryDebits != a.EntryCredits {
				issues = append(issues, fmt.Sprintf("entries unbalanced: debits %d, credits %d", a.EntryDebits, a.EntryCredits))
			}
		} else if a.EntryCount > 0 || a.TransactionCount > 0 {
			issues = append(issues, fmt.Sprintf("ledger records exist for %s payment", a.Status))
		}

		if len(issues) > 0 {
			result.Discrepancies = append(result.Discrepancies, domain.Discrepancy{ID: a.PaymentID, Issues: issues})
		}
	}

	result.DiscrepanciesCount = len(result.Discrepancies)
	if result.DiscrepanciesCount > 0 {
		result.Status = domain.CheckError
	}
	return result
}

// ReconcileRefunds audits every refund, including the referential check that
// its payment still exists.
func (s *reconciliationService) ReconcileRefunds(ctx context.Context) domain.RefundsCheckResult {
	result := domain.RefundsCheckResult{
		Status:        domain.CheckOK,
		RefundsTotal:  map[string]int64{},
		LedgerTotal:   map[string]int64{},
		Discrepancies: []domain.Discrepancy{},
	}

	audits, err := s.reconRepo.ListRefundAudits(ctx)
	if err != nil {
		s.LogError(ctx, err, "Refund reconciliation query failed")
		result.Status = domain.CheckError
		result.Reason = failureReason(err)
		return result
	}

	for _, a := range audits {
		result.TotalRefunds++

		var issues []string
		if !a.PaymentExists {
			issues = append(issues, fmt.Sprintf("payment %s not found", a.PaymentID))
		}

		if a.Status == domain.RefundCompleted {
			result.RefundsTotal[a.CurrencyCode] += a.Amount
			result.LedgerTotal[a.CurrencyCode] += a.TransactionTotal
			if a.TransactionCount == 0 {
				issues = append(issues, "no ledger transaction")
			}
			if a.TransactionCount > 0 && a.TransactionTotal != a.Amount {
				issues = append(issues, fmt.Sprintf("transaction total %d does not match refund amount %d", a.TransactionTotal, a.Amount))
			}
			if a.EntryCount == 0 {
				issues = append(issues, "no ledger entries")
			}
			if a.EntryDebits != a.EntryCredits {
				issues = append(issues, fmt.Sprintf("entries unbalanced: debits %d, credits %d", a.EntryDebits, a.EntryCredits))
			}
		} else if a.EntryCount > 0 || a.TransactionCount > 0 {
			issues = append(issues, fmt.Sprintf("ledger records exist for %s refund", a.Status))
		}

		if len(issues) > 0 {
			result.Discrepancies = append(result.Discrepancies, domain.Discrepancy{ID: a.RefundID, Issues: issues})
		}
	}

	result.DiscrepanciesCount = len(result.Discrepancies)
	if result.DiscrepanciesCount > 0 {
		result.Status = domain.CheckError
	}
	return result
}

// CheckLedgerBalance verifies that debits equal credits per currency across
// the whole entry store. When out of balance it also reports which accounts
// carry the non-zero nets to aid diagnosis.
func (s *reconciliationService) CheckLedgerBalance(ctx context.Context) domain.LedgerBalanceResult {
	result := domain.LedgerBalanceResult{
		Status:      domain.CheckOK,
		Balanced:    true,
		Differences: map[string]int64{},
	}

	balances, err := s.reconRepo.LedgerBalances(ctx)
	if err != nil {
		s.LogError(ctx, err, "Ledger balance query failed")
		result.Status = domain.CheckError
		result.Reason = failureReason(err)
		result.Balanced = false
		return result
	}

	for _, b := range balances {
		diff := b.Debits - b.Credits
		result.Differences[b.CurrencyCode] = diff
		if diff != 0 {
			result.Balanced = false
		}
	}

	if !result.Balanced {
		result.Status = domain.CheckError
		nets, err := s.reconRepo.AccountNetBalances(ctx)
		if err != nil {
			s.LogError(ctx, err, "Account net balance query failed")
		} else {
			result.NonZeroAccounts = nets
		}
	}
	return result
}

// CheckOrphanedEntries finds entries and transactions whose payment or refund
// reference points at nothing.
func (s *reconciliationService) CheckOrphanedEntries(ctx context.Context) domain.OrphansCheckResult {
	result := domain.OrphansCheckResult{
		Status:  domain.CheckOK,
		Orphans: []domain.OrphanRecord{},
	}

	entries, err := s.reconRepo.FindOrphanedEntries(ctx)
	if err != nil {
		s.LogError(ctx, err, "Orphaned entry query failed")
		result.Status = domain.CheckError
		result.Reason = failureReason(err)
		return result
	}
	txns, err := s.reconRepo.FindOrphanedTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Orphaned transaction query failed")
		result.Status = domain.CheckError
		result.Reason = failureReason(err)
		return result
	}

	result.Orphans = append(result.Orphans, entries...)
	result.Orphans = append(result.Orphans, txns...)
	result.Count = len(result.Orphans)
	if result.Count > 0 {
		result.Status = domain.CheckError
	}
	return result
}

// ReconcileEntityTotals compares refund-netted payment totals against the
// ledger's revenue sums per entity category and currency.
func (s *reconciliationService) ReconcileEntityTotals(ctx context.Context) domain.EntityTotalsResult {
	result := domain.EntityTotalsResult{
		Status:     domain.CheckOK,
		Categories: []domain.EntityCategoryTotal{},
	}

	paymentTotals, err := s.reconRepo.EntityPaymentTotals(ctx)
	if err != nil {
		s.LogError(ctx, err, "Entity payment totals query failed")
		result.Status = domain.CheckError
		result.Reason = failureReason(err)
		return result
	}
	revenueEntries, err := s.reconRepo.ListRevenueEntries(ctx)
	if err != nil {
		s.LogError(ctx, err, "Revenue entry query failed")
		result.Status = domain.CheckError
		result.Reason = failureReason(err)
		return result
	}

	payments := make(map[entityKey]int64, len(paymentTotals))
	ledger := sumDistinctRevenueEntries(revenueEntries)
	keys := make(map[entityKey]struct{})
	for _, t := range paymentTotals {
		k := entityKey{t.EntityType, t.CurrencyCode}
		payments[k] = t.Total
		keys[k] = struct{}{}
	}
	for k := range ledger {
		keys[k] = struct{}{}
	}

	ordered := make([]entityKey, 0, len(keys))
	for k := range keys {
		ordered = append(ordered, k)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].entityType != ordered[j].entityType {
			return ordered[i].entityType < ordered[j].entityType
		}
		return ordered[i].currency < ordered[j].currency
	})

	for _, k := range ordered {
		category := domain.EntityCategoryTotal{
			EntityType:    k.entityType,
			CurrencyCode:  k.currency,
			PaymentsTotal: payments[k],
			LedgerTotal:   ledger[k],
			Mismatch:      payments[k] != ledger[k],
		}
		if category.Mismatch {
			result.Mismatches++
		}
		result.Categories = append(result.Categories, category)
	}

	if result.Mismatches > 0 {
		result.Status = domain.CheckError
	}
	return result
}

// entityKey identifies one (entity category, currency) bucket.
type entityKey struct {
	entityType domain.RelatedEntityType
	currency   string
}

// sumDistinctRevenueEntries nets revenue entries per category and currency,
// counting each entry exactly once no matter how many times the source rows
// repeat it. Credits increase a category's total, refund debits reduce it.
func sumDistinctRevenueEntries(rows []domain.RevenueEntryRow) map[entityKey]int64 {
	totals := make(map[entityKey]int64)
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.EntryID]; ok {
			continue
		}
		seen[row.EntryID] = struct{}{}

		amount := row.Amount
		if row.DebitCredit == domain.Debit {
			amount = -amount
		}
		totals[entityKey{row.EntityType, row.CurrencyCode}] += amount
	}
	return totals
}

// RunFullReconciliation executes every check, stamps the report with timing
// and emits a telemetry event summarising the run.
func (s *reconciliationService) RunFullReconciliation(ctx context.Context) domain.ReconciliationReport {
	start := time.Now()
	s.LogInfo(ctx, "Starting full reconciliation run")

	report := domain.ReconciliationReport{
		Timestamp:     start.UTC(),
		OverallStatus: domain.CheckOK,
	}

	report.Payments = s.ReconcilePayments(ctx)
	report.Refunds = s.ReconcileRefunds(ctx)
	report.LedgerBalance = s.CheckLedgerBalance(ctx)
	report.Orphans = s.CheckOrphanedEntries(ctx)
	report.EntityTotals = s.ReconcileEntityTotals(ctx)

	if report.FailedChecks() > 0 {
		report.OverallStatus = domain.CheckError
	}
	report.DurationMS = time.Since(start).Milliseconds()

	s.LogInfo(ctx, "Completed full reconciliation run",
		slog.String("overall_status", string(report.OverallStatus)),
		slog.Int64("duration_ms", report.DurationMS),
		slog.Int("failed_checks", report.FailedChecks()))

	if s.telemetry != nil {
		s.telemetry.Enqueue(domain.SystemUserID, "reconciliation_run_completed", map[string]any{
			"overall_status":          string(report.OverallStatus),
			"duration_ms":             report.DurationMS,
			"failed_checks":           report.FailedChecks(),
			"total_payments":          report.Payments.TotalPayments,
			"total_refunds":           report.Refunds.TotalRefunds,
			"payment_discrepancies":   report.Payments.DiscrepanciesCount,
			"refund_discrepancies":    report.Refunds.DiscrepanciesCount,
			"ledger_balanced":         report.LedgerBalance.Balanced,
			"orphaned_records":        report.Orphans.Count,
			"entity_total_mismatches": report.EntityTotals.Mismatches,
		})
	}

	return report
}

// FormatReport renders a human-readable summary of a reconciliation report.
func (s *reconciliationService) FormatReport(report domain.ReconciliationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Reconciliation report %s (%dms) - %s\n",
		report.Timestamp.Format(time.RFC3339), report.DurationMS, strings.ToUpper(string(report.OverallStatus)))

	fmt.Fprintf(&b, "\nPayments: %s (%d audited, %d discrepancies)\n",
		report.Payments.Status, report.Payments.TotalPayments, report.Payments.DiscrepanciesCount)
	writeTotals(&b, "payments", report.Payments.PaymentsTotal)
	writeTotals(&b, "ledger", report.Payments.LedgerTotal)
	writeDiscrepancies(&b, report.Payments.Discrepancies)

	fmt.Fprintf(&b, "\nRefunds: %s (%d audited, %d discrepancies)\n",
		report.Refunds.Status, report.Refunds.TotalRefunds, report.Refunds.DiscrepanciesCount)
	writeTotals(&b, "refunds", report.Refunds.RefundsTotal)
	writeTotals(&b, "ledger", report.Refunds.LedgerTotal)
	writeDiscrepancies(&b, report.Refunds.Discrepancies)

	fmt.Fprintf(&b, "\nLedger balance: %s (balanced: %t)\n", report.LedgerBalance.Status, report.LedgerBalance.Balanced)
	for _, currency := range sortedKeys(report.LedgerBalance.Differences) {
		fmt.Fprintf(&b, "  %s: debits - credits = %s\n", currency, utils.FormatMinorUnits(report.LedgerBalance.Differences[currency]))
	}
	for _, acct := range report.LedgerBalance.NonZeroAccounts {
		fmt.Fprintf(&b, "  account %s (%s): net %s\n", acct.AccountName, acct.AccountID, utils.FormatMoney(domain.NewMoney(acct.Net, acct.CurrencyCode)))
	}

	fmt.Fprintf(&b, "\nOrphaned records: %s (%d found)\n", report.Orphans.Status, report.Orphans.Count)
	for _, o := range report.Orphans.Orphans {
		fmt.Fprintf(&b, "  %s %s references missing %s (%s)\n", o.RecordType, o.RecordID, o.Reference, o.Reason)
	}

	fmt.Fprintf(&b, "\nEntity totals: %s (%d mismatches)\n", report.EntityTotals.Status, report.EntityTotals.Mismatches)
	for _, c := range report.EntityTotals.Categories {
		marker := "ok"
		if c.Mismatch {
			marker = "MISMATCH"
		}
		fmt.Fprintf(&b, "  %s %s: payments %s, ledger %s [%s]\n",
			c.EntityType, c.CurrencyCode,
			utils.FormatMinorUnits(c.PaymentsTotal), utils.FormatMinorUnits(c.LedgerTotal), marker)
	}

	return b.String()
}

func writeTotals(b *strings.Builder, label string, totals map[string]int64) {
	for _, currency := range sortedKeys(totals) {
		fmt.Fprintf(b, "  %s total %s: %s\n", label, currency, utils.FormatMinorUnits(totals[currency]))
	}
}

func writeDiscrepancies(b *strings.Builder, discrepancies []domain.Discrepancy) {
	for _, d := range discrepancies {
		fmt.Fprintf(b, "  %s: %s\n", d.ID, strings.Join(d.Issues, "; "))
	}
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
