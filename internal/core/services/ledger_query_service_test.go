package services_test

import (
	"context"
	"testing"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type LedgerQueryServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockPaymentRepo *MockPaymentRepository
	service         portssvc.LedgerQuerySvcFacade
}

func (suite *LedgerQueryServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.service = services.NewLedgerQueryService(suite.mockLedgerRepo, suite.mockPaymentRepo)
}

func (suite *LedgerQueryServiceTestSuite) TestGetTransaction() {
	ctx := context.Background()
	txnID := uuid.NewString()
	txn := &domain.LedgerTransaction{TransactionID: txnID, Type: domain.TxnPayment}
	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), TransactionID: txnID, DebitCredit: domain.Debit},
		{EntryID: uuid.NewString(), TransactionID: txnID, DebitCredit: domain.Credit},
	}

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, txnID).Return(txn, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByTransactionID", ctx, txnID).Return(entries, nil).Once()

	gotTxn, gotEntries, err := suite.service.GetTransaction(ctx, txnID)

	suite.Require().NoError(err)
	suite.Equal(txn, gotTxn)
	suite.Equal(entries, gotEntries)
}

func (suite *LedgerQueryServiceTestSuite) TestGetTransaction_NotFound() {
	ctx := context.Background()
	txnID := uuid.NewString()

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, txnID).Return(nil, apperrors.ErrNotFound).Once()

	gotTxn, gotEntries, err := suite.service.GetTransaction(ctx, txnID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(gotTxn)
	suite.Nil(gotEntries)
}

func (suite *LedgerQueryServiceTestSuite) TestListEntriesByAccount_DefaultLimit() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockLedgerRepo.On("ListEntriesByAccount", ctx, accountID, 50, (*string)(nil)).Return([]domain.LedgerEntry{}, nil, nil).Once()

	entries, next, err := suite.service.ListEntriesByAccount(ctx, accountID, 0, nil)

	suite.Require().NoError(err)
	suite.Empty(entries)
	suite.Nil(next)
}

func (suite *LedgerQueryServiceTestSuite) TestListEntriesByAccount_LimitClampedToMax() {
	ctx := context.Background()
	accountID := uuid.NewString()
	token := "eyJvZmZzZXQiOjF9"

	suite.mockLedgerRepo.On("ListEntriesByAccount", ctx, accountID, 200, &token).
		Return([]domain.LedgerEntry{{EntryID: uuid.NewString()}}, "next-token", nil).Once()

	entries, next, err := suite.service.ListEntriesByAccount(ctx, accountID, 5000, &token)

	suite.Require().NoError(err)
	suite.Len(entries, 1)
	suite.Require().NotNil(next)
	suite.Equal("next-token", *next)
}

func (suite *LedgerQueryServiceTestSuite) TestGetPayment() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	payment := &domain.Payment{PaymentID: paymentID, Status: domain.PaymentCompleted}
	txns := []domain.LedgerTransaction{{TransactionID: uuid.NewString(), Type: domain.TxnPayment, PaymentID: &paymentID}}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()
	suite.mockLedgerRepo.On("FindTransactionsByPaymentID", ctx, paymentID).Return(txns, nil).Once()

	gotPayment, gotTxns, err := suite.service.GetPayment(ctx, paymentID)

	suite.Require().NoError(err)
	suite.Equal(payment, gotPayment)
	suite.Equal(txns, gotTxns)
}

func (suite *LedgerQueryServiceTestSuite) TestGetPayment_NotFound() {
	ctx := context.Background()
	paymentID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.GetPayment(ctx, paymentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindTransactionsByPaymentID", ctx, paymentID)
}

func (suite *LedgerQueryServiceTestSuite) TestGetRefund() {
	ctx := context.Background()
	refundID := uuid.NewString()
	refund := &domain.Refund{RefundID: refundID, Status: domain.RefundCompleted}

	suite.mockPaymentRepo.On("FindRefundByID", ctx, refundID).Return(refund, nil).Once()

	got, err := suite.service.GetRefund(ctx, refundID)

	suite.Require().NoError(err)
	suite.Equal(refund, got)
}

func (suite *LedgerQueryServiceTestSuite) TestGetPayout_NotFound() {
	ctx := context.Background()
	payoutID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPayoutByID", ctx, payoutID).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetPayout(ctx, payoutID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(got)
}

func TestLedgerQueryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerQueryServiceTestSuite))
}
