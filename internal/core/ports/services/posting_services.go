package services

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/dto"
)

// PaymentPostingResult is returned by ProcessPayment: the payment record, its
// ledger transaction and the balanced entry set created in one unit of work.
type PaymentPostingResult struct {
	Payment     domain.Payment
	Transaction domain.LedgerTransaction
	Entries     []domain.LedgerEntry
}

// RefundPostingResult is returned by ProcessRefund.
type RefundPostingResult struct {
	Refund      domain.Refund
	Transaction domain.LedgerTransaction
	Entries     []domain.LedgerEntry
}

// PayoutPostingResult is returned by RecordPayout.
type PayoutPostingResult struct {
	Payout      domain.Payout
	Transaction domain.LedgerTransaction
	Entries     []domain.LedgerEntry
}

// PostingSvcFacade is the double-entry posting engine: the only writer of
// ledger transactions and entries.
type PostingSvcFacade interface {
	// ProcessPayment posts a completed payment: revenue credit, clearing
	// debit, and a fee pair when the fee is non-zero. Atomic; idempotency is
	// enforced on the external payment id.
	ProcessPayment(ctx context.Context, req dto.ProcessPaymentRequest) (*PaymentPostingResult, error)

	// ProcessRefund posts a full or partial refund as a symmetric reversal of
	// the original payment posting.
	ProcessRefund(ctx context.Context, req dto.ProcessRefundRequest) (*RefundPostingResult, error)

	// RecordPayout posts a processor payout settling a batch of payments and
	// refunds, net of the payout fee.
	RecordPayout(ctx context.Context, req dto.RecordPayoutRequest) (*PayoutPostingResult, error)
}
