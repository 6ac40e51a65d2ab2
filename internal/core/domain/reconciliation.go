package domain

import "time"

// CheckStatus is the outcome of one reconciliation sub-check. "error" means
// the audit found a problem (or the check itself could not run), never that
// the engine crashed.
type CheckStatus string

const (
	CheckOK    CheckStatus = "ok"
	CheckError CheckStatus = "error"
)

// Check failure reasons for engine-level faults, as opposed to data findings.
const (
	ReasonTimeout     = "timeout"
	ReasonQueryFailed = "query_failed"
)

// Discrepancy records the specific issues found for one source record.
type Discrepancy struct {
	ID     string   `json:"id"` // Payment or refund id
	Issues []string `json:"issues"`
}

// PaymentsCheckResult is the outcome of the payment coverage check.
type PaymentsCheckResult struct {
	Status             CheckStatus      `json:"status"`
	Reason             string           `json:"reason,omitempty"`
	TotalPayments      int              `json:"total_payments"`
	PaymentsTotal      map[string]int64 `json:"payments_total"` // Per currency, from payments
	LedgerTotal        map[string]int64 `json:"ledger_total"` // Per currency, summed from transaction total amounts
	Discrepancies      []Discrepancy    `json:"discrepancies"`
	DiscrepanciesCount int              `json:"discrepancies_count"`
}

// RefundsCheckResult is the outcome of the refund coverage check.
type RefundsCheckResult struct {
	Status             CheckStatus      `json:"status"`
	Reason             string           `json:"reason,omitempty"`
	TotalRefunds       int              `json:"total_refunds"`
	RefundsTotal       map[string]int64 `json:"refunds_total"`
	LedgerTotal        map[string]int64 `json:"ledger_total"`
	Discrepancies      []Discrepancy    `json:"discrepancies"`
	DiscrepanciesCount int              `json:"discrepancies_count"`
}

// AccountImbalance describes an account whose entries net to a non-zero value
// when the global ledger is out of balance.
type AccountImbalance struct {
	AccountID    string `json:"account_id"`
	AccountName  string `json:"account_name"`
	CurrencyCode string `json:"currency_code"`
	Net          int64  `json:"net"` // Signed minor units, debit positive
}

// LedgerBalanceResult is the outcome of the global balance check.
type LedgerBalanceResult struct {
	Status          CheckStatus        `json:"status"`
	Reason          string             `json:"reason,omitempty"`
	Balanced        bool               `json:"balanced"`
	Differences     map[string]int64   `json:"differences"` // Per currency: debits - credits
	NonZeroAccounts []AccountImbalance `json:"non_zero_accounts,omitempty"`
}

// OrphanReason names why a ledger record is considered orphaned.
type OrphanReason string

const (
	OrphanPaymentNotFound OrphanReason = "payment_not_found"
	OrphanRefundNotFound  OrphanReason = "refund_not_found"
)

// OrphanRecord identifies one entry or transaction whose payment/refund
// reference points at nothing.
type OrphanRecord struct {
	RecordType string       `json:"record_type"` // "entry" or "transaction"
	RecordID   string       `json:"record_id"`
	Reference  string       `json:"reference"` // The dangling payment/refund id
	Reason     OrphanReason `json:"reason"`
}

// OrphansCheckResult is the outcome of the orphan detection check.
type OrphansCheckResult struct {
	Status  CheckStatus    `json:"status"`
	Reason  string         `json:"reason,omitempty"`
	Orphans []OrphanRecord `json:"orphans"`
	Count   int            `json:"count"`
}

// EntityCategoryTotal compares completed-payment totals against ledger entry
// totals for one entity category.
type EntityCategoryTotal struct {
	EntityType    RelatedEntityType `json:"entity_type"`
	CurrencyCode  string            `json:"currency_code"`
	PaymentsTotal int64             `json:"payments_total"`
	LedgerTotal   int64             `json:"ledger_total"`
	Mismatch      bool              `json:"mismatch"`
}

// EntityTotalsResult is the outcome of the per-entity-category totals check.
type EntityTotalsResult struct {
	Status     CheckStatus           `json:"status"`
	Reason     string                `json:"reason,omitempty"`
	Categories []EntityCategoryTotal `json:"categories"`
	Mismatches int                   `json:"mismatches"`
}

// ReconciliationReport is the full output of one reconciliation run. The
// engine is stateless between runs; nothing beyond this report (and the
// telemetry event) is persisted.
type ReconciliationReport struct {
	Timestamp     time.Time           `json:"timestamp"`
	DurationMS    int64               `json:"duration_ms"`
	OverallStatus CheckStatus         `json:"overall_status"`
	Payments      PaymentsCheckResult `json:"payments"`
	Refunds       RefundsCheckResult  `json:"refunds"`
	LedgerBalance LedgerBalanceResult `json:"ledger_balance"`
	Orphans       OrphansCheckResult  `json:"orphaned_entries"`
	EntityTotals  EntityTotalsResult  `json:"entity_totals"`
}

// FailedChecks counts the sub-checks that reported an error.
func (r ReconciliationReport) FailedChecks() int {
	n := 0
	for _, s := range []CheckStatus{
		r.Payments.Status, r.Refunds.Status, r.LedgerBalance.Status,
		r.Orphans.Status, r.EntityTotals.Status,
	} {
		if s == CheckError {
			n++
		}
	}
	return n
}

// PaymentAudit is the aggregate row the reconciliation engine reads per
// payment: the source amount next to everything the ledger derived for it.
// Aggregation happens in SQL so the engine never loads every entry row.
type PaymentAudit struct {
	PaymentID        string
	Amount           int64
	CurrencyCode     string
	Status           PaymentStatus
	TransactionCount int
	TransactionTotal int64
	EntryCount       int
	EntryDebits      int64
	EntryCredits     int64
}

// RefundAudit is the aggregate row the reconciliation engine reads per refund.
type RefundAudit struct {
	RefundID         string
	PaymentID        string
	Amount           int64
	CurrencyCode     string
	Status           RefundStatus
	PaymentExists    bool
	TransactionCount int
	TransactionTotal int64
	EntryCount       int
	EntryDebits      int64
	EntryCredits     int64
}

// CurrencyBalance holds the grouped debit/credit sums for one currency across
// the whole entry store.
type CurrencyBalance struct {
	CurrencyCode string
	Debits       int64
	Credits      int64
}

// EntityTotalRow holds grouped sums for one entity category and currency.
type EntityTotalRow struct {
	EntityType   RelatedEntityType
	CurrencyCode string
	Total        int64
}

// RevenueEntryRow is one revenue-account entry as read for the entity totals
// check. The query joining entries to accounts and source records can yield
// the same entry under several join paths, so consumers must deduplicate by
// EntryID before summing.
type RevenueEntryRow struct {
	EntryID      string
	EntityType   RelatedEntityType
	CurrencyCode string
	DebitCredit  DebitCredit
	Amount       int64
}
