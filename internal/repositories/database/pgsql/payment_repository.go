package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	"github.com/clubops/clubledger/internal/models"
	"github.com/clubops/clubledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for source-of-truth payment,
// refund and payout records. Ledger writes live in PgxLedgerRepository; this
// repository reads, and updates sync metadata only.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, user_id, amount, currency_code, provider, external_payment_id, status, related_entity_type, related_entity_id, payment_method, description, sync_status, external_accounting_id, sync_attempted_at, sync_error, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.UserID,
		&m.Amount,
		&m.CurrencyCode,
		&m.Provider,
		&m.ExternalPaymentID,
		&m.Status,
		&m.EntityType,
		&m.EntityID,
		&m.PaymentMethod,
		&m.Description,
		&m.SyncStatus,
		&m.ExternalAccountingID,
		&m.SyncAttemptedAt,
		&m.SyncError,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	return r.findPayment(ctx, query, paymentID)
}

// FindPaymentByExternalID retrieves a payment by its processor-assigned id.
func (r *PgxPaymentRepository) FindPaymentByExternalID(ctx context.Context, externalPaymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE external_payment_id = $1;`
	return r.findPayment(ctx, query, externalPaymentID)
}

func (r *PgxPaymentRepository) findPayment(ctx context.Context, query string, arg string) (*domain.Payment, error) {
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment "+arg, err)
	}
	payment := mapping.ToDomainPayment(*m)
	return &payment, nil
}

const refundColumns = `refund_id, payment_id, amount, currency_code, reason, external_refund_id, status, sync_status, external_accounting_id, sync_attempted_at, sync_error, created_at, created_by, last_updated_at, last_updated_by`

func scanRefund(row pgx.Row) (*models.Refund, error) {
	var m models.Refund
	err := row.Scan(
		&m.RefundID,
		&m.PaymentID,
		&m.Amount,
		&m.CurrencyCode,
		&m.Reason,
		&m.ExternalRefundID,
		&m.Status,
		&m.SyncStatus,
		&m.ExternalAccountingID,
		&m.SyncAttemptedAt,
		&m.SyncError,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindRefundByID retrieves a refund by its ID.
func (r *PgxPaymentRepository) FindRefundByID(ctx context.Context, refundID string) (*domain.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE refund_id = $1;`
	return r.findRefund(ctx, query, refundID)
}

// FindRefundByExternalID retrieves a refund by its processor-assigned id.
func (r *PgxPaymentRepository) FindRefundByExternalID(ctx context.Context, externalRefundID string) (*domain.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE external_refund_id = $1;`
	return r.findRefund(ctx, query, externalRefundID)
}

func (r *PgxPaymentRepository) findRefund(ctx context.Context, query string, arg string) (*domain.Refund, error) {
	m, err := scanRefund(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find refund "+arg, err)
	}
	refund := mapping.ToDomainRefund(*m)
	return &refund, nil
}

// SumCompletedRefunds returns the total completed refund amount for a payment
// in minor units.
func (r *PgxPaymentRepository) SumCompletedRefunds(ctx context.Context, paymentID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM refunds
		WHERE payment_id = $1 AND status = 'COMPLETED';
	`
	var total int64
	if err := r.Pool.QueryRow(ctx, query, paymentID).Scan(&total); err != nil {
		return 0, apperrors.NewAppError(500, "failed to sum refunds for payment "+paymentID, err)
	}
	return total, nil
}

// FindPayoutByID retrieves a payout with its settled payment and refund ids.
func (r *PgxPaymentRepository) FindPayoutByID(ctx context.Context, payoutID string) (*domain.Payout, error) {
	query := `
		SELECT payout_id, amount, fee, currency_code, status, external_payout_id, arrival_date, sync_status, external_accounting_id, sync_attempted_at, sync_error, created_at, created_by, last_updated_at, last_updated_by
		FROM payouts
		WHERE payout_id = $1;
	`
	var m models.Payout
	err := r.Pool.QueryRow(ctx, query, payoutID).Scan(
		&m.PayoutID,
		&m.Amount,
		&m.Fee,
		&m.CurrencyCode,
		&m.Status,
		&m.ExternalPayoutID,
		&m.ArrivalDate,
		&m.SyncStatus,
		&m.ExternalAccountingID,
		&m.SyncAttemptedAt,
		&m.SyncError,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payout "+payoutID, err)
	}

	payout := mapping.ToDomainPayout(m)

	itemsQuery := `SELECT payment_id, refund_id FROM payout_items WHERE payout_id = $1;`
	rows, err := r.Pool.Query(ctx, itemsQuery, payoutID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payout items for "+payoutID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var paymentID, refundID *string
		if err := rows.Scan(&paymentID, &refundID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payout item row for "+payoutID, err)
		}
		if paymentID != nil {
			payout.PaymentIDs = append(payout.PaymentIDs, *paymentID)
		}
		if refundID != nil {
			payout.RefundIDs = append(payout.RefundIDs, *refundID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payout item rows for "+payoutID, err)
	}

	return &payout, nil
}

// UpdatePaymentSyncStatus records a sync attempt outcome on a payment.
// Metadata columns only; ledger rows are untouched.
func (r *PgxPaymentRepository) UpdatePaymentSyncStatus(ctx context.Context, paymentID string, sync domain.SyncFields, now time.Time) error {
	return r.updateSyncStatus(ctx, "payments", "payment_id", paymentID, sync, now)
}

// UpdateRefundSyncStatus records a sync attempt outcome on a refund.
func (r *PgxPaymentRepository) UpdateRefundSyncStatus(ctx context.Context, refundID string, sync domain.SyncFields, now time.Time) error {
	return r.updateSyncStatus(ctx, "refunds", "refund_id", refundID, sync, now)
}

// UpdatePayoutSyncStatus records a sync attempt outcome on a payout.
func (r *PgxPaymentRepository) UpdatePayoutSyncStatus(ctx context.Context, payoutID string, sync domain.SyncFields, now time.Time) error {
	return r.updateSyncStatus(ctx, "payouts", "payout_id", payoutID, sync, now)
}

func (r *PgxPaymentRepository) updateSyncStatus(ctx context.Context, table, idColumn, id string, sync domain.SyncFields, now time.Time) error {
	m := mapping.ToModelSyncFields(sync)
	query := `
		UPDATE ` + table + `
		SET sync_status = $2,
		    external_accounting_id = $3,
		    sync_attempted_at = $4,
		    sync_error = $5,
		    last_updated_at = $6
		WHERE ` + idColumn + ` = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, id, m.SyncStatus, m.ExternalAccountingID, now, m.SyncError, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update sync status for "+table+" "+id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(table + " " + id + " not found for sync update")
	}
	return nil
}
