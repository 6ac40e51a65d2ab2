package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
)

const (
	defaultEntryPageSize = 50
	maxEntryPageSize     = 200
)

// ledgerQueryService implements the LedgerQuerySvcFacade interface.
type ledgerQueryService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerReader
	paymentRepo portsrepo.PaymentReadFacade
}

// NewLedgerQueryService creates the read-only ledger query service.
func NewLedgerQueryService(ledgerRepo portsrepo.LedgerReader, paymentRepo portsrepo.PaymentReadFacade) portssvc.LedgerQuerySvcFacade {
	return &ledgerQueryService{ledgerRepo: ledgerRepo, paymentRepo: paymentRepo}
}

// Ensure ledgerQueryService implements the LedgerQuerySvcFacade interface
var _ portssvc.LedgerQuerySvcFacade = (*ledgerQueryService)(nil)

// GetTransaction retrieves a ledger transaction together with its entries.
func (s *ledgerQueryService) GetTransaction(ctx context.Context, transactionID string) (*domain.LedgerTransaction, []domain.LedgerEntry, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
		}
		s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		return nil, nil, err
	}

	entries, err := s.ledgerRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transaction entries", slog.String("transaction_id", transactionID))
		return nil, nil, err
	}
	return txn, entries, nil
}

// ListEntriesByAccount retrieves one page of an account's entries, newest
// first, with a cursor token for the next page.
func (s *ledgerQueryService) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	if limit > maxEntryPageSize {
		limit = maxEntryPageSize
	}

	entries, next, err := s.ledgerRepo.ListEntriesByAccount(ctx, accountID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account entries", slog.String("account_id", accountID))
		return nil, nil, err
	}
	return entries, next, nil
}

// GetPayment retrieves a payment together with the ledger transactions posted
// for it.
func (s *ledgerQueryService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, []domain.LedgerTransaction, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewNotFoundError(fmt.Sprintf("payment %s not found", paymentID))
		}
		s.LogError(ctx, err, "Failed to find payment", slog.String("payment_id", paymentID))
		return nil, nil, err
	}

	txns, err := s.ledgerRepo.FindTransactionsByPaymentID(ctx, paymentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payment transactions", slog.String("payment_id", paymentID))
		return nil, nil, err
	}
	return payment, txns, nil
}

// GetRefund retrieves a refund record.
func (s *ledgerQueryService) GetRefund(ctx context.Context, refundID string) (*domain.Refund, error) {
	refund, err := s.paymentRepo.FindRefundByID(ctx, refundID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("refund %s not found", refundID))
		}
		s.LogError(ctx, err, "Failed to find refund", slog.String("refund_id", refundID))
		return nil, err
	}
	return refund, nil
}

// GetPayout retrieves a payout with its settled payment and refund ids.
func (s *ledgerQueryService) GetPayout(ctx context.Context, payoutID string) (*domain.Payout, error) {
	payout, err := s.paymentRepo.FindPayoutByID(ctx, payoutID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("payout %s not found", payoutID))
		}
		s.LogError(ctx, err, "Failed to find payout", slog.String("payout_id", payoutID))
		return nil, err
	}
	return payout, nil
}
