package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/core/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockPaymentRepo *MockPaymentRepository
	mockAccounts    *MockAccountRegistryService
	service         portssvc.PostingSvcFacade

	eventRevenue    domain.LedgerAccount
	generalRevenue  domain.LedgerAccount
	clearingAccount domain.LedgerAccount
	feeAccount      domain.LedgerAccount
	settlement      domain.LedgerAccount
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockAccounts = new(MockAccountRegistryService)
	suite.service = services.NewPostingService(suite.mockLedgerRepo, suite.mockPaymentRepo, suite.mockAccounts)

	suite.eventRevenue = domain.LedgerAccount{
		AccountID:     uuid.NewString(),
		Name:          "Event Revenue",
		AccountType:   domain.Revenue,
		NormalBalance: domain.Credit,
		CurrencyCode:  "EUR",
	}
	suite.generalRevenue = domain.LedgerAccount{
		AccountID:     uuid.NewString(),
		Name:          services.AccountGeneralRevenue,
		AccountType:   domain.Revenue,
		NormalBalance: domain.Credit,
		CurrencyCode:  "EUR",
	}
	suite.clearingAccount = domain.LedgerAccount{
		AccountID:     uuid.NewString(),
		Name:          services.AccountProcessorClearing,
		AccountType:   domain.Asset,
		NormalBalance: domain.Debit,
		CurrencyCode:  "EUR",
	}
	suite.feeAccount = domain.LedgerAccount{
		AccountID:     uuid.NewString(),
		Name:          services.AccountProcessorFees,
		AccountType:   domain.Expense,
		NormalBalance: domain.Debit,
		CurrencyCode:  "EUR",
	}
	suite.settlement = domain.LedgerAccount{
		AccountID:     uuid.NewString(),
		Name:          services.AccountSettlement,
		AccountType:   domain.Asset,
		NormalBalance: domain.Debit,
		CurrencyCode:  "EUR",
	}
}

func (suite *PostingServiceTestSuite) paymentRequest(amount, fee int64) dto.ProcessPaymentRequest {
	entityType := string(domain.EntityEvent)
	entityID := uuid.NewString()
	return dto.ProcessPaymentRequest{
		UserID:            uuid.NewString(),
		Amount:            amount,
		CurrencyCode:      "EUR",
		Provider:          "stripe",
		ExternalPaymentID: "pi_" + uuid.NewString(),
		EntityType:        &entityType,
		EntityID:          &entityID,
		Fee:               fee,
	}
}

// sideTotal sums the magnitudes posted to one side of an entry set.
func sideTotal(entries []domain.LedgerEntry, side domain.DebitCredit) int64 {
	var total int64
	for _, e := range entries {
		if e.DebitCredit == side {
			total += e.Amount.Amount
		}
	}
	return total
}

func accountTotal(entries []domain.LedgerEntry, accountID string, side domain.DebitCredit) int64 {
	var total int64
	for _, e := range entries {
		if e.AccountID == accountID && e.DebitCredit == side {
			total += e.Amount.Amount
		}
	}
	return total
}

func (suite *PostingServiceTestSuite) TestProcessPayment_WithFee() {
	ctx := context.Background()
	req := suite.paymentRequest(10000, 300)

	suite.mockPaymentRepo.On("FindPaymentByExternalID", ctx, req.ExternalPaymentID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, "Event Revenue").Return(&suite.eventRevenue, nil).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, services.AccountProcessorClearing).Return(&suite.clearingAccount, nil).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, services.AccountProcessorFees).Return(&suite.feeAccount, nil).Once()
	suite.mockLedgerRepo.On("SavePaymentPosting", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("domain.LedgerTransaction"), mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()

	result, err := suite.service.ProcessPayment(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.PaymentCompleted, result.Payment.Status)
	suite.Equal(domain.TxnPayment, result.Transaction.Type)
	suite.Equal(int64(10000), result.Transaction.TotalAmount.Amount)

	suite.Require().Len(result.Entries, 4)
	suite.Equal(sideTotal(result.Entries, domain.Debit), sideTotal(result.Entries, domain.Credit))
	suite.Equal(int64(10000), accountTotal(result.Entries, suite.clearingAccount.AccountID, domain.Debit))
	suite.Equal(int64(10000), accountTotal(result.Entries, suite.eventRevenue.AccountID, domain.Credit))
	suite.Equal(int64(300), accountTotal(result.Entries, suite.feeAccount.AccountID, domain.Debit))
	suite.Equal(int64(300), accountTotal(result.Entries, suite.clearingAccount.AccountID, domain.Credit))

	for _, e := range result.Entries {
		suite.Require().NotNil(e.PaymentID)
		suite.Equal(result.Payment.PaymentID, *e.PaymentID)
		suite.Nil(e.RefundID)
		suite.Equal(result.Transaction.TransactionID, e.TransactionID)
	}
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestProcessPayment_ZeroFee_NoFeeEntries() {
	ctx := context.Background()
	req := suite.paymentRequest(5000, 0)

	suite.mockPaymentRepo.On("FindPaymentByExternalID", ctx, req.ExternalPaymentID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, "Event Revenue").Return(&suite.eventRevenue, nil).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, services.AccountProcessorClearing).Return(&suite.clearingAccount, nil).Once()
	suite.mockLedgerRepo.On("SavePaymentPosting", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.ProcessPayment(ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(result.Entries, 2)
	suite.mockAccounts.AssertNotCalled(suite.T(), "GetAccountByName", ctx, services.AccountProcessorFees)
}

func (suite *PostingServiceTestSuite) TestProcessPayment_ZeroAmount() {
	ctx := context.Background()
	req := suite.paymentRequest(0, 0)

	suite.mockPaymentRepo.On("FindPaymentByExternalID", ctx, req.ExternalPaymentID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, "Event Revenue").Return(&suite.eventRevenue, nil).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, services.AccountProcessorClearing).Return(&suite.clearingAccount, nil).Once()
	suite.mockLedgerRepo.On("SavePaymentPosting", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.ProcessPayment(ctx, req)

	// Free items still post a balanced pair at zero.
	suite.Require().NoError(err)
	suite.Require().Len(result.Entries, 2)
	suite.Equal(int64(0), sideTotal(result.Entries, domain.Debit))
	suite.Equal(int64(0), sideTotal(result.Entries, domain.Credit))
}

func (suite *PostingServiceTestSuite) TestProcessPayment_UntaggedUsesGeneralRevenue() {
	ctx := context.Background()
	req := suite.paymentRequest(2500, 0)
	req.EntityType = nil
	req.EntityID = nil

	suite.mockPaymentRepo.On("FindPaymentByExternalID", ctx, req.ExternalPaymentID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, services.AccountGeneralRevenue).Return(&suite.generalRevenue, nil).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, services.AccountProcessorClearing).Return(&suite.clearingAccount, nil).Once()
	suite.mockLedgerRepo.On("SavePaymentPosting", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.ProcessPayment(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(int64(2500), accountTotal(result.Entries, suite.generalRevenue.AccountID, domain.Credit))
}

func (suite *PostingServiceTestSuite) TestProcessPayment_UnknownEntityType() {
	ctx := context.Background()
	req := suite.paymentRequest(2500, 0)
	entityType := "INVOICE"
	req.EntityType = &entityType

	result, err := suite.service.ProcessPayment(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "FindPaymentByExternalID", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestProcessPayment_DuplicateExternalID() {
	ctx := context.Background()
	req := suite.paymentRequest(10000, 300)

	existing := &domain.Payment{PaymentID: uuid.NewString(), ExternalPaymentID: req.ExternalPaymentID}
	suite.mockPaymentRepo.On("FindPaymentByExternalID", ctx, req.ExternalPaymentID).Return(existing, nil).Once()

	result, err := suite.service.ProcessPayment(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(result)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePaymentPosting", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestProcessPayment_SaveFails_NothingReturned() {
	ctx := context.Background()
	req := suite.paymentRequest(10000, 0)

	suite.mockPaymentRepo.On("FindPaymentByExternalID", ctx, req.ExternalPaymentID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, "Event Revenue").Return(&suite.eventRevenue, nil).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, services.AccountProcessorClearing).Return(&suite.clearingAccount, nil).Once()
	saveErr := errors.New("insert failed")
	suite.mockLedgerRepo.On("SavePaymentPosting", ctx, mock.Anything, mock.Anything, mock.Anything).Return(saveErr).Once()

	result, err := suite.service.ProcessPayment(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, saveErr)
	suite.Nil(result)
}

func (suite *PostingServiceTestSuite) TestProcessPayment_MissingAccountIsFatal() {
	ctx := context.Background()
	req := suite.paymentRequest(10000, 0)

	suite.mockPaymentRepo.On("FindPaymentByExternalID", ctx, req.ExternalPaymentID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, "Event Revenue").Return(nil, apperrors.NewNotFoundError("account \"Event Revenue\" not found")).Once()

	result, err := suite.service.ProcessPayment(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(result)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePaymentPosting", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) completedPayment(amount int64) *domain.Payment {
	entityType := domain.EntityEvent
	entityID := uuid.NewString()
	return &domain.Payment{
		PaymentID:         uuid.NewString(),
		UserID:            uuid.NewString(),
		Amount:            domain.NewMoney(amount, "EUR"),
		Provider:          "stripe",
		ExternalPaymentID: "pi_" + uuid.NewString(),
		Status:            domain.PaymentCompleted,
		EntityType:        &entityType,
		EntityID:          &entityID,
	}
}

func (suite *PostingServiceTestSuite) TestProcessRefund_Partial() {
	ctx := context.Background()
	payment := suite.completedPayment(10000)
	req := dto.ProcessRefundRequest{
		PaymentID:        payment.PaymentID,
		Amount:           5000,
		Reason:           "cancelled booking",
		ExternalRefundID: "re_" + uuid.NewString(),
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("FindRefundByExternalID", ctx, req.ExternalRefundID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPaymentRepo.On("SumCompletedRefunds", ctx, payment.PaymentID).Return(int64(0), nil).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, "Event Revenue").Return(&suite.eventRevenue, nil).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, services.AccountProcessorClearing).Return(&suite.clearingAccount, nil).Once()
	suite.mockLedgerRepo.On("SaveRefundPosting", ctx, mock.AnythingOfType("domain.Refund"), domain.PaymentPartiallyRefunded, mock.AnythingOfType("domain.LedgerTransaction"), mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()

	result, err := suite.service.ProcessRefund(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RefundCompleted, result.Refund.Status)
	suite.Equal(domain.TxnRefund, result.Transaction.Type)

	suite.Require().Len(result.Entries, 2)
	suite.Equal(int64(5000), accountTotal(result.Entries, suite.eventRevenue.AccountID, domain.Debit))
	suite.Equal(int64(5000), accountTotal(result.Entries, suite.clearingAccount.AccountID, domain.Credit))
	for _, e := range result.Entries {
		suite.Require().NotNil(e.PaymentID)
		suite.Require().NotNil(e.RefundID)
		suite.Equal(payment.PaymentID, *e.PaymentID)
		suite.Equal(result.Refund.RefundID, *e.RefundID)
	}
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestProcessRefund_FullMarksRefunded() {
	ctx := context.Background()
	payment := suite.completedPayment(10000)
	req := dto.ProcessRefundRequest{
		PaymentID:        payment.PaymentID,
		Amount:           5000,
		ExternalRefundID: "re_" + uuid.NewString(),
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("FindRefundByExternalID", ctx, req.ExternalRefundID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPaymentRepo.On("SumCompletedRefunds", ctx, payment.PaymentID).Return(int64(5000), nil).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, "Event Revenue").Return(&suite.eventRevenue, nil).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, services.AccountProcessorClearing).Return(&suite.clearingAccount, nil).Once()
	suite.mockLedgerRepo.On("SaveRefundPosting", ctx, mock.Anything, domain.PaymentRefunded, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.ProcessRefund(ctx, req)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestProcessRefund_ExceedsRemaining() {
	ctx := context.Background()
	payment := suite.completedPayment(10000)
	req := dto.ProcessRefundRequest{
		PaymentID:        payment.PaymentID,
		Amount:           5000,
		ExternalRefundID: "re_" + uuid.NewString(),
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("FindRefundByExternalID", ctx, req.ExternalRefundID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPaymentRepo.On("SumCompletedRefunds", ctx, payment.PaymentID).Return(int64(8000), nil).Once()

	result, err := suite.service.ProcessRefund(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveRefundPosting", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestProcessRefund_ConcurrentRefundLosesRace() {
	// The service's remainder check ran against a stale sum; the store
	// re-checks under the payment row lock and rejects the overdraw.
	ctx := context.Background()
	payment := suite.completedPayment(10000)
	req := dto.ProcessRefundRequest{
		PaymentID:        payment.PaymentID,
		Amount:           6000,
		ExternalRefundID: "re_" + uuid.NewString(),
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("FindRefundByExternalID", ctx, req.ExternalRefundID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPaymentRepo.On("SumCompletedRefunds", ctx, payment.PaymentID).Return(int64(0), nil).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, "Event Revenue").Return(&suite.eventRevenue, nil).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, services.AccountProcessorClearing).Return(&suite.clearingAccount, nil).Once()
	raceErr := fmt.Errorf("%w: refund total 11000 exceeds payment amount 10000 for payment %s", apperrors.ErrValidation, payment.PaymentID)
	suite.mockLedgerRepo.On("SaveRefundPosting", ctx, mock.AnythingOfType("domain.Refund"), domain.PaymentPartiallyRefunded, mock.AnythingOfType("domain.LedgerTransaction"), mock.AnythingOfType("[]domain.LedgerEntry")).Return(raceErr).Once()

	result, err := suite.service.ProcessRefund(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
}

func (suite *PostingServiceTestSuite) TestProcessRefund_PaymentNotFound() {
	ctx := context.Background()
	req := dto.ProcessRefundRequest{
		PaymentID:        uuid.NewString(),
		Amount:           5000,
		ExternalRefundID: "re_" + uuid.NewString(),
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, req.PaymentID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.ProcessRefund(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(result)
}

func (suite *PostingServiceTestSuite) TestRecordPayout() {
	ctx := context.Background()
	req := dto.RecordPayoutRequest{
		Amount:           9700,
		Fee:              300,
		CurrencyCode:     "EUR",
		ExternalPayoutID: "po_" + uuid.NewString(),
	}

	suite.mockAccounts.On("GetAccountByName", ctx, services.AccountProcessorClearing).Return(&suite.clearingAccount, nil).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, services.AccountSettlement).Return(&suite.settlement, nil).Once()
	suite.mockAccounts.On("GetAccountByName", ctx, services.AccountProcessorFees).Return(&suite.feeAccount, nil).Once()
	suite.mockLedgerRepo.On("SavePayoutPosting", ctx, mock.AnythingOfType("domain.Payout"), mock.AnythingOfType("domain.LedgerTransaction"), mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()

	result, err := suite.service.RecordPayout(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.TxnPayout, result.Transaction.Type)
	// Gross moves out of clearing; net lands in settlement; fee is expensed.
	suite.Require().Len(result.Entries, 3)
	suite.Equal(int64(9700), accountTotal(result.Entries, suite.settlement.AccountID, domain.Debit))
	suite.Equal(int64(10000), accountTotal(result.Entries, suite.clearingAccount.AccountID, domain.Credit))
	suite.Equal(int64(300), accountTotal(result.Entries, suite.feeAccount.AccountID, domain.Debit))
	suite.Equal(sideTotal(result.Entries, domain.Debit), sideTotal(result.Entries, domain.Credit))
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
