package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// postingService implements the PostingSvcFacade interface. It is the only
// writer of ledger transactions and entries; everything it posts goes through
// accounting.ValidateBalanced before it reaches the store.
type postingService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	paymentRepo portsrepo.PaymentReader
	accountSvc  portssvc.AccountRegistrySvcFacade
}

// NewPostingService creates the double-entry posting engine.
func NewPostingService(ledgerRepo portsrepo.LedgerRepositoryWithTx, paymentRepo portsrepo.PaymentReader, accountSvc portssvc.AccountRegistrySvcFacade) portssvc.PostingSvcFacade {
	return &postingService{
		ledgerRepo:  ledgerRepo,
		paymentRepo: paymentRepo,
		accountSvc:  accountSvc,
	}
}

// Ensure postingService implements the PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// ProcessPayment posts a completed payment in one atomic unit of work:
// the payment record, a PAYMENT transaction, a revenue credit matched by a
// clearing debit, and a fee expense pair when the fee is non-zero.
func (s *postingService) ProcessPayment(ctx context.Context, req dto.ProcessPaymentRequest) (*portssvc.PaymentPostingResult, error) {
	if req.Amount < 0 || req.Fee < 0 {
		return nil, fmt.Errorf("amount and fee must not be negative: %w", apperrors.ErrValidation)
	}

	var entityType *domain.RelatedEntityType
	if req.EntityType != nil {
		t := domain.RelatedEntityType(*req.EntityType)
		if !domain.ValidRelatedEntityType(t) {
			return nil, fmt.Errorf("unknown entity type %q: %w", *req.EntityType, apperrors.ErrValidation)
		}
		entityType = &t
	}
	if req.EntityID != nil && entityType == nil {
		return nil, fmt.Errorf("entityID requires entityType: %w", apperrors.ErrValidation)
	}

	// Idempotency on the processor's id: the same webhook delivered twice
	// must not post twice. A concurrent duplicate that slips past this
	// lookup is caught by the unique constraint inside the unit of work.
	if existing, err := s.paymentRepo.FindPaymentByExternalID(ctx, req.ExternalPaymentID); err == nil {
		s.LogWarn(ctx, "Payment already posted for external id",
			slog.String("external_payment_id", req.ExternalPaymentID),
			slog.String("payment_id", existing.PaymentID))
		return nil, fmt.Errorf("payment with external id %s already posted: %w", req.ExternalPaymentID, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	revenueAccount, err := s.accountSvc.GetAccountByName(ctx, RevenueAccountNameFor(entityType))
	if err != nil {
		return nil, err
	}
	clearingAccount, err := s.accountSvc.GetAccountByName(ctx, AccountProcessorClearing)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	paymentID := uuid.NewString()
	amount := domain.NewMoney(req.Amount, req.CurrencyCode)

	payment := domain.Payment{
		PaymentID:         paymentID,
		UserID:            req.UserID,
		Amount:            amount,
		Provider:          req.Provider,
		ExternalPaymentID: req.ExternalPaymentID,
		Status:            domain.PaymentCompleted,
		EntityType:        entityType,
		EntityID:          req.EntityID,
		PaymentMethod:     req.PaymentMethod,
		Description:       req.Description,
		SyncFields:        domain.SyncFields{SyncStatus: domain.SyncPending},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: req.UserID,
		},
	}

	txn := domain.LedgerTransaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TxnPayment,
		TotalAmount:   amount,
		Status:        domain.TxnCompleted,
		Description:   req.Description,
		PaymentID:     &paymentID,
		CreatedAt:     now,
		CreatedBy:     req.UserID,
	}

	entries := []domain.LedgerEntry{
		s.newEntry(txn, clearingAccount.AccountID, amount, domain.Debit, entityType, req.EntityID, &paymentID, nil, now, req.UserID),
		s.newEntry(txn, revenueAccount.AccountID, amount, domain.Credit, entityType, req.EntityID, &paymentID, nil, now, req.UserID),
	}

	// A zero fee produces no fee entries, not zero-amount ones.
	if req.Fee > 0 {
		feeAccount, err := s.accountSvc.GetAccountByName(ctx, AccountProcessorFees)
		if err != nil {
			return nil, err
		}
		fee := domain.NewMoney(req.Fee, req.CurrencyCode)
		entries = append(entries,
			s.newEntry(txn, feeAccount.AccountID, fee, domain.Debit, entityType, req.EntityID, &paymentID, nil, now, req.UserID),
			s.newEntry(txn, clearingAccount.AccountID, fee, domain.Credit, entityType, req.EntityID, &paymentID, nil, now, req.UserID),
		)
	}

	if err := accounting.ValidateBalanced(entries); err != nil {
		s.LogError(ctx, err, "Payment entry set does not balance", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	if err := s.ledgerRepo.SavePaymentPosting(ctx, payment, txn, entries); err != nil {
		s.LogError(ctx, err, "Failed to post payment",
			slog.String("payment_id", paymentID),
			slog.String("external_payment_id", req.ExternalPaymentID))
		return nil, err
	}

	s.LogInfo(ctx, "Posted payment",
		slog.String("payment_id", paymentID),
		slog.String("transaction_id", txn.TransactionID),
		slog.Int64("amount", req.Amount),
		slog.Int64("fee", req.Fee),
		slog.Int("entries", len(entries)))

	return &portssvc.PaymentPostingResult{Payment: payment, Transaction: txn, Entries: entries}, nil
}

// ProcessRefund posts a full or partial refund as a symmetric reversal:
// revenue debit matched by a clearing credit, both tagged with the original
// payment and the new refund.
func (s *postingService) ProcessRefund(ctx context.Context, req dto.ProcessRefundRequest) (*portssvc.RefundPostingResult, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("refund amount must be positive: %w", apperrors.ErrValidation)
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, req.PaymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("payment %s not found", req.PaymentID))
		}
		return nil, err
	}

	if existing, err := s.paymentRepo.FindRefundByExternalID(ctx, req.ExternalRefundID); err == nil {
		s.LogWarn(ctx, "Refund already posted for external id",
			slog.String("external_refund_id", req.ExternalRefundID),
			slog.String("refund_id", existing.RefundID))
		return nil, fmt.Errorf("refund with external id %s already posted: %w", req.ExternalRefundID, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	refunded, err := s.paymentRepo.SumCompletedRefunds(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}
	remaining := payment.Amount.Amount - refunded
	if req.Amount > remaining {
		return nil, fmt.Errorf("refund amount %d exceeds remaining payment amount %d: %w", req.Amount, remaining, apperrors.ErrValidation)
	}

	revenueAccount, err := s.accountSvc.GetAccountByName(ctx, RevenueAccountNameFor(payment.EntityType))
	if err != nil {
		return nil, err
	}
	clearingAccount, err := s.accountSvc.GetAccountByName(ctx, AccountProcessorClearing)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	refundID := uuid.NewString()
	amount := domain.NewMoney(req.Amount, payment.Amount.CurrencyCode)

	refund := domain.Refund{
		RefundID:         refundID,
		PaymentID:        payment.PaymentID,
		Amount:           amount,
		Reason:           req.Reason,
		ExternalRefundID: req.ExternalRefundID,
		Status:           domain.RefundCompleted,
		SyncFields:       domain.SyncFields{SyncStatus: domain.SyncPending},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     payment.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: payment.UserID,
		},
	}

	paymentStatus := domain.PaymentPartiallyRefunded
	if refunded+req.Amount == payment.Amount.Amount {
		paymentStatus = domain.PaymentRefunded
	}

	paymentID := payment.PaymentID
	txn := domain.LedgerTransaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TxnRefund,
		TotalAmount:   amount,
		Status:        domain.TxnCompleted,
		Description:   req.Reason,
		PaymentID:     &paymentID,
		RefundID:      &refundID,
		CreatedAt:     now,
		CreatedBy:     payment.UserID,
	}

	entries := []domain.LedgerEntry{
		s.newEntry(txn, revenueAccount.AccountID, amount, domain.Debit, payment.EntityType, payment.EntityID, &paymentID, &refundID, now, payment.UserID),
		s.newEntry(txn, clearingAccount.AccountID, amount, domain.Credit, payment.EntityType, payment.EntityID, &paymentID, &refundID, now, payment.UserID),
	}

	if err := accounting.ValidateBalanced(entries); err != nil {
		s.LogError(ctx, err, "Refund entry set does not balance", slog.String("refund_id", refundID))
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	if err := s.ledgerRepo.SaveRefundPosting(ctx, refund, paymentStatus, txn, entries); err != nil {
		s.LogError(ctx, err, "Failed to post refund",
			slog.String("refund_id", refundID),
			slog.String("payment_id", payment.PaymentID))
		return nil, err
	}

	s.LogInfo(ctx, "Posted refund",
		slog.String("refund_id", refundID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("payment_status", string(paymentStatus)),
		slog.Int64("amount", req.Amount))

	return &portssvc.RefundPostingResult{Refund: refund, Transaction: txn, Entries: entries}, nil
}

// RecordPayout posts a processor payout: the settlement account receives the
// net amount, the payout fee is expensed, and the clearing account is relieved
// of the gross.
func (s *postingService) RecordPayout(ctx context.Context, req dto.RecordPayoutRequest) (*portssvc.PayoutPostingResult, error) {
	if req.Amount < 0 || req.Fee < 0 {
		return nil, fmt.Errorf("payout amount and fee must not be negative: %w", apperrors.ErrValidation)
	}

	clearingAccount, err := s.accountSvc.GetAccountByName(ctx, AccountProcessorClearing)
	if err != nil {
		return nil, err
	}
	settlementAccount, err := s.accountSvc.GetAccountByName(ctx, AccountSettlement)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payoutID := uuid.NewString()
	net := domain.NewMoney(req.Amount, req.CurrencyCode)
	fee := domain.NewMoney(req.Fee, req.CurrencyCode)
	gross := domain.NewMoney(req.Amount+req.Fee, req.CurrencyCode)

	payout := domain.Payout{
		PayoutID:         payoutID,
		Amount:           net,
		Fee:              fee,
		Status:           domain.PayoutPaid,
		ExternalPayoutID: req.ExternalPayoutID,
		ArrivalDate:      req.ArrivalDate,
		PaymentIDs:       req.PaymentIDs,
		RefundIDs:        req.RefundIDs,
		SyncFields:       domain.SyncFields{SyncStatus: domain.SyncPending},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     domain.SystemUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: domain.SystemUserID,
		},
	}

	txn := domain.LedgerTransaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TxnPayout,
		TotalAmount:   gross,
		Status:        domain.TxnCompleted,
		Description:   fmt.Sprintf("Processor payout %s", req.ExternalPayoutID),
		CreatedAt:     now,
		CreatedBy:     domain.SystemUserID,
	}

	entries := []domain.LedgerEntry{
		s.newEntry(txn, settlementAccount.AccountID, net, domain.Debit, nil, nil, nil, nil, now, domain.SystemUserID),
		s.newEntry(txn, clearingAccount.AccountID, gross, domain.Credit, nil, nil, nil, nil, now, domain.SystemUserID),
	}
	if req.Fee > 0 {
		feeAccount, err := s.accountSvc.GetAccountByName(ctx, AccountProcessorFees)
		if err != nil {
			return nil, err
		}
		entries = append(entries,
			s.newEntry(txn, feeAccount.AccountID, fee, domain.Debit, nil, nil, nil, nil, now, domain.SystemUserID),
		)
	}

	if err := accounting.ValidateBalanced(entries); err != nil {
		s.LogError(ctx, err, "Payout entry set does not balance", slog.String("payout_id", payoutID))
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	if err := s.ledgerRepo.SavePayoutPosting(ctx, payout, txn, entries); err != nil {
		s.LogError(ctx, err, "Failed to post payout",
			slog.String("payout_id", payoutID),
			slog.String("external_payout_id", req.ExternalPayoutID))
		return nil, err
	}

	s.LogInfo(ctx, "Posted payout",
		slog.String("payout_id", payoutID),
		slog.String("transaction_id", txn.TransactionID),
		slog.Int64("net", req.Amount),
		slog.Int64("fee", req.Fee))

	return &portssvc.PayoutPostingResult{Payout: payout, Transaction: txn, Entries: entries}, nil
}

func (s *postingService) newEntry(txn domain.LedgerTransaction, accountID string, amount domain.Money, side domain.DebitCredit, entityType *domain.RelatedEntityType, entityID, paymentID, refundID *string, now time.Time, createdBy string) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		TransactionID: txn.TransactionID,
		AccountID:     accountID,
		Amount:        amount,
		DebitCredit:   side,
		Description:   txn.Description,
		EntityType:    entityType,
		EntityID:      entityID,
		PaymentID:     paymentID,
		RefundID:      refundID,
		CreatedAt:     now,
		CreatedBy:     createdBy,
	}
}
