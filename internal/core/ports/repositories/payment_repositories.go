package repositories

import (
	"context"
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
)

// PaymentReader defines read operations over source-of-truth payment records.
type PaymentReader interface {
	// FindPaymentByID retrieves one payment.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindPaymentByExternalID retrieves a payment by its processor-assigned id.
	FindPaymentByExternalID(ctx context.Context, externalPaymentID string) (*domain.Payment, error)

	// FindRefundByID retrieves one refund.
	FindRefundByID(ctx context.Context, refundID string) (*domain.Refund, error)

	// FindRefundByExternalID retrieves a refund by its processor-assigned id.
	FindRefundByExternalID(ctx context.Context, externalRefundID string) (*domain.Refund, error)

	// SumCompletedRefunds returns the total completed refund amount for a
	// payment, in the payment's currency minor units.
	SumCompletedRefunds(ctx context.Context, paymentID string) (int64, error)
}

// SyncMetadataWriter updates external accounting sync metadata. These writes
// touch metadata columns only and never ledger rows.
type SyncMetadataWriter interface {
	// UpdatePaymentSyncStatus records a sync attempt outcome on a payment.
	UpdatePaymentSyncStatus(ctx context.Context, paymentID string, sync domain.SyncFields, now time.Time) error

	// UpdateRefundSyncStatus records a sync attempt outcome on a refund.
	UpdateRefundSyncStatus(ctx context.Context, refundID string, sync domain.SyncFields, now time.Time) error

	// UpdatePayoutSyncStatus records a sync attempt outcome on a payout.
	UpdatePayoutSyncStatus(ctx context.Context, payoutID string, sync domain.SyncFields, now time.Time) error
}

// PayoutReader defines read operations over payout records.
type PayoutReader interface {
	// FindPayoutByID retrieves one payout with its settled payment/refund ids.
	FindPayoutByID(ctx context.Context, payoutID string) (*domain.Payout, error)
}

// PaymentReadFacade combines the payment and payout read interfaces.
type PaymentReadFacade interface {
	PaymentReader
	PayoutReader
}

// PaymentRepositoryFacade combines the payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PayoutReader
	SyncMetadataWriter
}
