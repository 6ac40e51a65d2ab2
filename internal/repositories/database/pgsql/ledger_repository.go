package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	"github.com/clubops/clubledger/internal/models"
	"github.com/clubops/clubledger/internal/utils/mapping"
	"github.com/clubops/clubledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository is the single write path into the append-only ledger
// tables. It exposes inserts only; update/delete statements do not exist
// here, and the forbid_ledger_mutation trigger rejects them at the storage
// layer regardless of who issues them.
type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger transactions and entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const txnInsertQuery = `
	INSERT INTO ledger_transactions (transaction_id, type, total_amount, currency_code, status, description, payment_id, refund_id, created_at, created_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

const entryInsertQuery = `
	INSERT INTO ledger_entries (entry_id, transaction_id, account_id, amount, currency_code, debit_credit, description, related_entity_type, related_entity_id, payment_id, refund_id, created_at, created_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

// insertTransactionAndEntries queues the transaction insert plus a batch of
// entry inserts on tx. The caller owns commit/rollback.
func (r *PgxLedgerRepository) insertTransactionAndEntries(ctx context.Context, tx pgx.Tx, txn domain.LedgerTransaction, entries []domain.LedgerEntry) error {
	mTxn := mapping.ToModelLedgerTransaction(txn)
	_, err := tx.Exec(ctx, txnInsertQuery,
		mTxn.TransactionID,
		mTxn.Type,
		mTxn.TotalAmount,
		mTxn.CurrencyCode,
		mTxn.Status,
		mTxn.Description,
		mTxn.PaymentID,
		mTxn.RefundID,
		mTxn.CreatedAt,
		mTxn.CreatedBy,
	)
	if err != nil {
		if isAppendOnlyViolation(err) {
			return apperrors.NewImmutableError("ledger transaction " + mTxn.TransactionID + " cannot be modified")
		}
		return apperrors.NewAppError(500, "failed to insert ledger transaction "+mTxn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelLedgerEntry(entry)
		batch.Queue(entryInsertQuery,
			m.EntryID,
			m.TransactionID,
			m.AccountID,
			m.Amount,
			m.CurrencyCode,
			m.DebitCredit,
			m.Description,
			m.EntityType,
			m.EntityID,
			m.PaymentID,
			m.RefundID,
			m.CreatedAt,
			m.CreatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isAppendOnlyViolation(err) {
			return apperrors.NewImmutableError("ledger entries for transaction " + mTxn.TransactionID + " cannot be modified")
		}
		return apperrors.NewAppError(500, "failed to execute entry batch for transaction "+mTxn.TransactionID, err)
	}
	return nil
}

// SavePaymentPosting upserts the payment as completed and inserts its
// transaction and entries inside one database transaction. A duplicate
// external payment id aborts the whole unit of work with ErrDuplicate.
func (r *PgxLedgerRepository) SavePaymentPosting(ctx context.Context, payment domain.Payment, txn domain.LedgerTransaction, entries []domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed

	m := mapping.ToModelPayment(payment)
	paymentQuery := `
		INSERT INTO payments (payment_id, user_id, amount, currency_code, provider, external_payment_id, status, related_entity_type, related_entity_id, payment_method, description, sync_status, external_accounting_id, sync_attempted_at, sync_error, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (payment_id) DO UPDATE
		SET status = EXCLUDED.status,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, paymentQuery,
		m.PaymentID,
		m.UserID,
		m.Amount,
		m.CurrencyCode,
		m.Provider,
		m.ExternalPaymentID,
		m.Status,
		m.EntityType,
		m.EntityID,
		m.PaymentMethod,
		m.Description,
		m.SyncStatus,
		m.ExternalAccountingID,
		m.SyncAttemptedAt,
		m.SyncError,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: payment with external id %s already posted", apperrors.ErrDuplicate, m.ExternalPaymentID)
		}
		return apperrors.NewAppError(500, "failed to upsert payment "+m.PaymentID, err)
	}

	if err := r.insertTransactionAndEntries(ctx, tx, txn, entries); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveRefundPosting inserts the refund, moves the payment to its new status
// and inserts the refund transaction and entries, all in one database
// transaction. The payment row is locked and the refunded sum re-checked
// under that lock, so concurrent refunds with distinct external ids cannot
// together exceed the payment amount.
func (r *PgxLedgerRepository) SaveRefundPosting(ctx context.Context, refund domain.Refund, paymentStatus domain.PaymentStatus, txn domain.LedgerTransaction, entries []domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelRefund(refund)

	var paymentAmount int64
	lockQuery := `SELECT amount FROM payments WHERE payment_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, m.PaymentID).Scan(&paymentAmount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: payment %s not found for refund", apperrors.ErrNotFound, m.PaymentID)
		}
		return apperrors.NewAppError(500, "failed to lock payment "+m.PaymentID, err)
	}
	refundQuery := `
		INSERT INTO refunds (refund_id, payment_id, amount, currency_code, reason, external_refund_id, status, sync_status, external_accounting_id, sync_attempted_at, sync_error, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, refundQuery,
		m.RefundID,
		m.PaymentID,
		m.Amount,
		m.CurrencyCode,
		m.Reason,
		m.ExternalRefundID,
		m.Status,
		m.SyncStatus,
		m.ExternalAccountingID,
		m.SyncAttemptedAt,
		m.SyncError,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: refund with external id %s already posted", apperrors.ErrDuplicate, m.ExternalRefundID)
		}
		return apperrors.NewAppError(500, "failed to insert refund "+m.RefundID, err)
	}

	// The new refund row is visible inside this transaction, so the sum
	// includes it. Anything above the payment amount means a concurrent
	// refund won the race for the remaining balance.
	var refundedTotal int64
	sumQuery := `SELECT COALESCE(SUM(amount), 0) FROM refunds WHERE payment_id = $1 AND status = 'COMPLETED';`
	if err := tx.QueryRow(ctx, sumQuery, m.PaymentID).Scan(&refundedTotal); err != nil {
		return apperrors.NewAppError(500, "failed to sum refunds for payment "+m.PaymentID, err)
	}
	if refundedTotal > paymentAmount {
		return fmt.Errorf("%w: refund total %d exceeds payment amount %d for payment %s",
			apperrors.ErrValidation, refundedTotal, paymentAmount, m.PaymentID)
	}

	statusQuery := `
		UPDATE payments
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE payment_id = $1;
	`
	if _, err := tx.Exec(ctx, statusQuery, m.PaymentID, string(paymentStatus), m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to update payment status for "+m.PaymentID, err)
	}

	if err := r.insertTransactionAndEntries(ctx, tx, txn, entries); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SavePayoutPosting inserts the payout, its settlement associations and the
// payout transaction with entries, all in one database transaction.
func (r *PgxLedgerRepository) SavePayoutPosting(ctx context.Context, payout domain.Payout, txn domain.LedgerTransaction, entries []domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPayout(payout)
	payoutQuery := `
		INSERT INTO payouts (payout_id, amount, fee, currency_code, status, external_payout_id, arrival_date, sync_status, external_accounting_id, sync_attempted_at, sync_error, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, payoutQuery,
		m.PayoutID,
		m.Amount,
		m.Fee,
		m.CurrencyCode,
		m.Status,
		m.ExternalPayoutID,
		m.ArrivalDate,
		m.SyncStatus,
		m.ExternalAccountingID,
		m.SyncAttemptedAt,
		m.SyncError,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: payout with external id %s already posted", apperrors.ErrDuplicate, m.ExternalPayoutID)
		}
		return apperrors.NewAppError(500, "failed to insert payout "+m.PayoutID, err)
	}

	itemQuery := `
		INSERT INTO payout_items (payout_id, payment_id, refund_id)
		VALUES ($1, $2, $3);
	`
	batch := &pgx.Batch{}
	for _, paymentID := range payout.PaymentIDs {
		pid := paymentID
		batch.Queue(itemQuery, m.PayoutID, &pid, nil)
	}
	for _, refundID := range payout.RefundIDs {
		rid := refundID
		batch.Queue(itemQuery, m.PayoutID, nil, &rid)
	}
	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert payout items for "+m.PayoutID, err)
		}
	}

	if err := r.insertTransactionAndEntries(ctx, tx, txn, entries); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

const txnColumns = `transaction_id, type, total_amount, currency_code, status, description, payment_id, refund_id, created_at, created_by`

func scanTransaction(row pgx.Row) (*models.LedgerTransaction, error) {
	var m models.LedgerTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.Type,
		&m.TotalAmount,
		&m.CurrencyCode,
		&m.Status,
		&m.Description,
		&m.PaymentID,
		&m.RefundID,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindTransactionByID retrieves a ledger transaction by its ID.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM ledger_transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	txn := mapping.ToDomainLedgerTransaction(*m)
	return &txn, nil
}

// FindTransactionsByPaymentID retrieves all transactions referencing a payment.
func (r *PgxLedgerRepository) FindTransactionsByPaymentID(ctx context.Context, paymentID string) ([]domain.LedgerTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM ledger_transactions WHERE payment_id = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for payment "+paymentID, err)
	}
	defer rows.Close()

	txns := []domain.LedgerTransaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row for payment "+paymentID, err)
		}
		txns = append(txns, mapping.ToDomainLedgerTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows for payment "+paymentID, err)
	}

	return txns, nil
}

const entryColumns = `entry_id, transaction_id, account_id, amount, currency_code, debit_credit, description, related_entity_type, related_entity_id, payment_id, refund_id, created_at, created_by`

func scanEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.TransactionID,
		&m.AccountID,
		&m.Amount,
		&m.CurrencyCode,
		&m.DebitCredit,
		&m.Description,
		&m.EntityType,
		&m.EntityID,
		&m.PaymentID,
		&m.RefundID,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindEntriesByTransactionID retrieves all entries of one transaction.
func (r *PgxLedgerRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE transaction_id = $1 ORDER BY created_at, entry_id;`

	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for transaction "+transactionID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for transaction "+transactionID, err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for transaction "+transactionID, err)
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// ListEntriesByAccount retrieves a cursor-paginated page of entries for an
// account using token-based pagination, newest first.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE account_id = $1`
	// Ordering must be stable; entry_id breaks created_at ties.
	orderByClause := `ORDER BY created_at DESC, entry_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}

		cursorClause := `AND (created_at, entry_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastEntryID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for account "+accountID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for account "+accountID, err)
		}
		modelEntries = append(modelEntries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1] // The actual last item of the current page
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	return mapping.ToDomainLedgerEntrySlice(results), nextTokenVal, nil
}
