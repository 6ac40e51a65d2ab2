package pgsql

import (
	"context"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates the read-only aggregate query surface
// for the reconciliation engine. All sums are computed in SQL; the engine
// never pages through individual entry rows.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepository {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReconciliationRepository implements portsrepo.ReconciliationRepository
var _ portsrepo.ReconciliationRepository = (*PgxReconciliationRepository)(nil)

// ListPaymentAudits returns one row per payment with its derived transaction
// and entry aggregates. Entries tagged with a refund_id belong to refund
// postings and are excluded, and each entry contributes exactly once because
// the grouping key is the entry row itself.
func (r *PgxReconciliationRepository) ListPaymentAudits(ctx context.Context) ([]domain.PaymentAudit, error) {
	query := `
		SELECT p.payment_id,
		       p.amount,
		       p.currency_code,
		       p.status,
		       COALESCE(t.txn_count, 0),
		       COALESCE(t.txn_total, 0),
		       COALESCE(e.entry_count, 0),
		       COALESCE(e.debits, 0),
		       COALESCE(e.credits, 0)
		FROM payments p
		LEFT JOIN (
			SELECT payment_id,
			       COUNT(*)         AS txn_count,
			       SUM(total_amount) AS txn_total
			FROM ledger_transactions
			WHERE type = 'PAYMENT'
			GROUP BY payment_id
		) t ON t.payment_id = p.payment_id
		LEFT JOIN (
			SELECT payment_id,
			       COUNT(DISTINCT entry_id) AS entry_count,
			       COALESCE(SUM(amount) FILTER (WHERE debit_credit = 'DEBIT'), 0)  AS debits,
			       COALESCE(SUM(amount) FILTER (WHERE debit_credit = 'CREDIT'), 0) AS credits
			FROM ledger_entries
			WHERE payment_id IS NOT NULL AND refund_id IS NULL
			GROUP BY payment_id
		) e ON e.payment_id = p.payment_id
		ORDER BY p.created_at, p.payment_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payment audits", err)
	}
	defer rows.Close()

	var audits []domain.PaymentAudit
	for rows.Next() {
		var a domain.PaymentAudit
		var status string
		if err := rows.Scan(
			&a.PaymentID,
			&a.Amount,
			&a.CurrencyCode,
			&status,
			&a.TransactionCount,
			&a.TransactionTotal,
			&a.EntryCount,
			&a.EntryDebits,
			&a.EntryCredits,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment audit row", err)
		}
		a.Status = domain.PaymentStatus(status)
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment audit rows", err)
	}
	return audits, nil
}

// ListRefundAudits returns one row per refund with its derived aggregates and
// whether the parent payment still exists.
func (r *PgxReconciliationRepository) ListRefundAudits(ctx context.Context) ([]domain.RefundAudit, error) {
	query := `
		SELECT rf.refund_id,
		       rf.payment_id,
		       rf.amount,
		       rf.currency_code,
		       rf.status,
		       (p.payment_id IS NOT NULL),
		       COALESCE(t.txn_count, 0),
		       COALESCE(t.txn_total, 0),
		       COALESCE(e.entry_count, 0),
		       COALESCE(e.debits, 0),
		       COALESCE(e.credits, 0)
		FROM refunds rf
		LEFT JOIN payments p ON p.payment_id = rf.payment_id
		LEFT JOIN (
			SELECT refund_id,
			       COUNT(*)          AS txn_count,
			       SUM(total_amount) AS txn_total
			FROM ledger_transactions
			WHERE type = 'REFUND'
			GROUP BY refund_id
		) t ON t.refund_id = rf.refund_id
		LEFT JOIN (
			SELECT refund_id,
			       COUNT(DISTINCT entry_id) AS entry_count,
			       COALESCE(SUM(amount) FILTER (WHERE debit_credit = 'DEBIT'), 0)  AS debits,
			       COALESCE(SUM(amount) FILTER (WHERE debit_credit = 'CREDIT'), 0) AS credits
			FROM ledger_entries
			WHERE refund_id IS NOT NULL
			GROUP BY refund_id
		) e ON e.refund_id = rf.refund_id
		ORDER BY rf.created_at, rf.refund_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query refund audits", err)
	}
	defer rows.Close()

	var audits []domain.RefundAudit
	for rows.Next() {
		var a domain.RefundAudit
		var status string
		if err := rows.Scan(
			&a.RefundID,
			&a.PaymentID,
			&a.Amount,
			&a.CurrencyCode,
			&status,
			&a.PaymentExists,
			&a.TransactionCount,
			&a.TransactionTotal,
			&a.EntryCount,
			&a.EntryDebits,
			&a.EntryCredits,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan refund audit row", err)
		}
		a.Status = domain.RefundStatus(status)
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating refund audit rows", err)
	}
	return audits, nil
}

// LedgerBalances returns the grouped debit and credit sums per currency across
// the whole entry store.
func (r *PgxReconciliationRepository) LedgerBalances(ctx context.Context) ([]domain.CurrencyBalance, error) {
	query := `
		SELECT currency_code,
		       COALESCE(SUM(amount) FILTER (WHERE debit_credit = 'DEBIT'), 0)  AS debits,
		       COALESCE(SUM(amount) FILTER (WHERE debit_credit = 'CREDIT'), 0) AS credits
		FROM ledger_entries
		GROUP BY currency_code
		ORDER BY currency_code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger balances", err)
	}
	defer rows.Close()

	var balances []domain.CurrencyBalance
	for rows.Next() {
		var b domain.CurrencyBalance
		if err := rows.Scan(&b.CurrencyCode, &b.Debits, &b.Credits); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger balance row", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger balance rows", err)
	}
	return balances, nil
}

// AccountNetBalances returns the signed net (debits minus credits) per account
// and currency, skipping accounts that net to zero.
func (r *PgxReconciliationRepository) AccountNetBalances(ctx context.Context) ([]domain.AccountImbalance, error) {
	query := `
		SELECT a.account_id,
		       a.name,
		       e.currency_code,
		       SUM(CASE WHEN e.debit_credit = 'DEBIT' THEN e.amount ELSE -e.amount END) AS net
		FROM ledger_entries e
		JOIN ledger_accounts a ON a.account_id = e.account_id
		GROUP BY a.account_id, a.name, e.currency_code
		HAVING SUM(CASE WHEN e.debit_credit = 'DEBIT' THEN e.amount ELSE -e.amount END) <> 0
		ORDER BY a.name, e.currency_code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account net balances", err)
	}
	defer rows.Close()

	var nets []domain.AccountImbalance
	for rows.Next() {
		var n domain.AccountImbalance
		if err := rows.Scan(&n.AccountID, &n.AccountName, &n.CurrencyCode, &n.Net); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account net balance row", err)
		}
		nets = append(nets, n)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account net balance rows", err)
	}
	return nets, nil
}

// FindOrphanedEntries returns entries whose payment or refund reference points
// at no existing source record.
func (r *PgxReconciliationRepository) FindOrphanedEntries(ctx context.Context) ([]domain.OrphanRecord, error) {
	query := `
		SELECT e.entry_id, e.payment_id, 'payment_not_found'
		FROM ledger_entries e
		LEFT JOIN payments p ON p.payment_id = e.payment_id
		WHERE e.payment_id IS NOT NULL AND p.payment_id IS NULL
		UNION ALL
		SELECT e.entry_id, e.refund_id, 'refund_not_found'
		FROM ledger_entries e
		LEFT JOIN refunds rf ON rf.refund_id = e.refund_id
		WHERE e.refund_id IS NOT NULL AND rf.refund_id IS NULL
		ORDER BY 1;
	`
	return r.queryOrphans(ctx, query, "entry")
}

// FindOrphanedTransactions returns transactions with dangling payment or
// refund references.
func (r *PgxReconciliationRepository) FindOrphanedTransactions(ctx context.Context) ([]domain.OrphanRecord, error) {
	query := `
		SELECT t.transaction_id, t.payment_id, 'payment_not_found'
		FROM ledger_transactions t
		LEFT JOIN payments p ON p.payment_id = t.payment_id
		WHERE t.payment_id IS NOT NULL AND p.payment_id IS NULL
		UNION ALL
		SELECT t.transaction_id, t.refund_id, 'refund_not_found'
		FROM ledger_transactions t
		LEFT JOIN refunds rf ON rf.refund_id = t.refund_id
		WHERE t.refund_id IS NOT NULL AND rf.refund_id IS NULL
		ORDER BY 1;
	`
	return r.queryOrphans(ctx, query, "transaction")
}

func (r *PgxReconciliationRepository) queryOrphans(ctx context.Context, query, recordType string) ([]domain.OrphanRecord, error) {
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query orphaned "+recordType+" records", err)
	}
	defer rows.Close()

	orphans, err := scanOrphans(rows, recordType)
	if err != nil {
		return nil, err
	}
	return orphans, nil
}

func scanOrphans(rows pgx.Rows, recordType string) ([]domain.OrphanRecord, error) {
	var orphans []domain.OrphanRecord
	for rows.Next() {
		var o domain.OrphanRecord
		var reason string
		if err := rows.Scan(&o.RecordID, &o.Reference, &reason); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan orphan row", err)
		}
		o.RecordType = recordType
		o.Reason = domain.OrphanReason(reason)
		orphans = append(orphans, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating orphan rows", err)
	}
	return orphans, nil
}

// EntityPaymentTotals returns completed payment sums grouped by entity
// category and currency, net of completed refunds. Netting here keeps the
// comparison symmetric with the ledger side, where refund debits already
// reduce the revenue totals.
func (r *PgxReconciliationRepository) EntityPaymentTotals(ctx context.Context) ([]domain.EntityTotalRow, error) {
	query := `
		SELECT p.related_entity_type, p.currency_code,
		       COALESCE(SUM(p.amount), 0) - COALESCE(SUM(rf.refunded), 0)
		FROM payments p
		LEFT JOIN (
			SELECT payment_id, SUM(amount) AS refunded
			FROM refunds
			WHERE status = 'COMPLETED'
			GROUP BY payment_id
		) rf ON rf.payment_id = p.payment_id
		WHERE p.status IN ('COMPLETED', 'PARTIALLY_REFUNDED', 'REFUNDED')
		  AND p.related_entity_type IS NOT NULL
		GROUP BY p.related_entity_type, p.currency_code
		ORDER BY p.related_entity_type, p.currency_code;
	`
	return r.queryEntityTotals(ctx, query)
}

// ListRevenueEntries returns the revenue-account entries carrying an entity
// tag. The service layer deduplicates by entry id before summing, so a row
// surfacing under several join paths can never inflate a category total.
func (r *PgxReconciliationRepository) ListRevenueEntries(ctx context.Context) ([]domain.RevenueEntryRow, error) {
	query := `
		SELECT e.entry_id, e.related_entity_type, e.currency_code, e.debit_credit, e.amount
		FROM ledger_entries e
		JOIN ledger_accounts a ON a.account_id = e.account_id
		WHERE a.account_type = 'REVENUE'
		  AND e.related_entity_type IS NOT NULL
		ORDER BY e.entry_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query revenue entries", err)
	}
	defer rows.Close()

	var out []domain.RevenueEntryRow
	for rows.Next() {
		var row domain.RevenueEntryRow
		var entityType, side string
		if err := rows.Scan(&row.EntryID, &entityType, &row.CurrencyCode, &side, &row.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan revenue entry row", err)
		}
		row.EntityType = domain.RelatedEntityType(entityType)
		row.DebitCredit = domain.DebitCredit(side)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating revenue entry rows", err)
	}
	return out, nil
}

func (r *PgxReconciliationRepository) queryEntityTotals(ctx context.Context, query string) ([]domain.EntityTotalRow, error) {
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entity totals", err)
	}
	defer rows.Close()

	var totals []domain.EntityTotalRow
	for rows.Next() {
		var t domain.EntityTotalRow
		var entityType string
		if err := rows.Scan(&entityType, &t.CurrencyCode, &t.Total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entity total row", err)
		}
		t.EntityType = domain.RelatedEntityType(entityType)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entity total rows", err)
	}
	return totals, nil
}
