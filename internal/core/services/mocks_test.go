package services_test

import (
	"context"
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, name string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.LedgerAccount, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.LedgerAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.LedgerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

// Ensure MockLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SavePaymentPosting(ctx context.Context, payment domain.Payment, txn domain.LedgerTransaction, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, payment, txn, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveRefundPosting(ctx context.Context, refund domain.Refund, paymentStatus domain.PaymentStatus, txn domain.LedgerTransaction, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, refund, paymentStatus, txn, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) SavePayoutPosting(ctx context.Context, payout domain.Payout, txn domain.LedgerTransaction, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, payout, txn, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindTransactionsByPaymentID(ctx context.Context, paymentID string) ([]domain.LedgerTransaction, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

// Ensure MockPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentByExternalID(ctx context.Context, externalPaymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, externalPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindRefundByID(ctx context.Context, refundID string) (*domain.Refund, error) {
	args := m.Called(ctx, refundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

func (m *MockPaymentRepository) FindRefundByExternalID(ctx context.Context, externalRefundID string) (*domain.Refund, error) {
	args := m.Called(ctx, externalRefundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

func (m *MockPaymentRepository) SumCompletedRefunds(ctx context.Context, paymentID string) (int64, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) FindPayoutByID(ctx context.Context, payoutID string) (*domain.Payout, error) {
	args := m.Called(ctx, payoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payout), args.Error(1)
}

func (m *MockPaymentRepository) UpdatePaymentSyncStatus(ctx context.Context, paymentID string, sync domain.SyncFields, now time.Time) error {
	args := m.Called(ctx, paymentID, sync, now)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdateRefundSyncStatus(ctx context.Context, refundID string, sync domain.SyncFields, now time.Time) error {
	args := m.Called(ctx, refundID, sync, now)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePayoutSyncStatus(ctx context.Context, payoutID string, sync domain.SyncFields, now time.Time) error {
	args := m.Called(ctx, payoutID, sync, now)
	return args.Error(0)
}

// --- Mock ReconciliationRepository ---
type MockReconciliationRepository struct {
	mock.Mock
}

// Ensure MockReconciliationRepository implements portsrepo.ReconciliationRepository
var _ portsrepo.ReconciliationRepository = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) ListPaymentAudits(ctx context.Context) ([]domain.PaymentAudit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAudit), args.Error(1)
}

func (m *MockReconciliationRepository) ListRefundAudits(ctx context.Context) ([]domain.RefundAudit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RefundAudit), args.Error(1)
}

func (m *MockReconciliationRepository) LedgerBalances(ctx context.Context) ([]domain.CurrencyBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyBalance), args.Error(1)
}

func (m *MockReconciliationRepository) AccountNetBalances(ctx context.Context) ([]domain.AccountImbalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountImbalance), args.Error(1)
}

func (m *MockReconciliationRepository) FindOrphanedEntries(ctx context.Context) ([]domain.OrphanRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrphanRecord), args.Error(1)
}

func (m *MockReconciliationRepository) FindOrphanedTransactions(ctx context.Context) ([]domain.OrphanRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrphanRecord), args.Error(1)
}

func (m *MockReconciliationRepository) EntityPaymentTotals(ctx context.Context) ([]domain.EntityTotalRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntityTotalRow), args.Error(1)
}

func (m *MockReconciliationRepository) ListRevenueEntries(ctx context.Context) ([]domain.RevenueEntryRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RevenueEntryRow), args.Error(1)
}

// --- Mock AccountRegistryService (as used by PostingService) ---
type MockAccountRegistryService struct {
	mock.Mock
}

var _ portssvc.AccountRegistrySvcFacade = (*MockAccountRegistryService)(nil)

func (m *MockAccountRegistryService) EnsureBasicAccounts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAccountRegistryService) GetAccountByName(ctx context.Context, name string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRegistryService) ListAccounts(ctx context.Context) ([]domain.LedgerAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccount), args.Error(1)
}
