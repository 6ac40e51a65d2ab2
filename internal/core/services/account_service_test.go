package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountRegistryServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountRegistrySvcFacade
}

func (suite *AccountRegistryServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountRegistryService(suite.mockAccountRepo, "EUR")
}

func (suite *AccountRegistryServiceTestSuite) TestEnsureBasicAccounts_EmptyRegistry() {
	ctx := context.Background()
	var created []domain.LedgerAccount

	suite.mockAccountRepo.On("FindAccountByName", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound)
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.LedgerAccount")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(domain.LedgerAccount))
		}).Return(nil)

	err := suite.service.EnsureBasicAccounts(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(created, 9)

	byName := make(map[string]domain.LedgerAccount, len(created))
	for _, a := range created {
		byName[a.Name] = a
	}

	suite.Equal(domain.Asset, byName[services.AccountProcessorClearing].AccountType)
	suite.Equal(domain.Debit, byName[services.AccountProcessorClearing].NormalBalance)
	suite.Equal(domain.Asset, byName[services.AccountSettlement].AccountType)
	suite.Equal(domain.Expense, byName[services.AccountProcessorFees].AccountType)
	suite.Equal(domain.Debit, byName[services.AccountProcessorFees].NormalBalance)

	for _, name := range []string{
		services.AccountGeneralRevenue,
		"Event Revenue", "Membership Revenue", "Booking Revenue", "Donation Revenue", "Administration Revenue",
	} {
		account, ok := byName[name]
		suite.Require().True(ok, "expected account %q to be seeded", name)
		suite.Equal(domain.Revenue, account.AccountType)
		suite.Equal(domain.Credit, account.NormalBalance)
		suite.Equal("EUR", account.CurrencyCode)
		suite.Equal(domain.SystemUserID, account.CreatedBy)
	}
}

func (suite *AccountRegistryServiceTestSuite) TestEnsureBasicAccounts_SecondRunSavesNothing() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByName", ctx, mock.AnythingOfType("string")).
		Return(&domain.LedgerAccount{AccountID: uuid.NewString()}, nil)

	err := suite.service.EnsureBasicAccounts(ctx)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountRegistryServiceTestSuite) TestEnsureBasicAccounts_ConcurrentSeederWinsRace() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByName", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound)
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.LedgerAccount")).Return(apperrors.ErrDuplicate)

	err := suite.service.EnsureBasicAccounts(ctx)

	suite.Require().NoError(err)
}

func (suite *AccountRegistryServiceTestSuite) TestEnsureBasicAccounts_LookupErrorStopsSeeding() {
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	suite.mockAccountRepo.On("FindAccountByName", ctx, mock.AnythingOfType("string")).Return(nil, dbErr)

	err := suite.service.EnsureBasicAccounts(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, dbErr)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountRegistryServiceTestSuite) TestGetAccountByName_Found() {
	ctx := context.Background()
	account := &domain.LedgerAccount{AccountID: uuid.NewString(), Name: services.AccountProcessorClearing}

	suite.mockAccountRepo.On("FindAccountByName", ctx, services.AccountProcessorClearing).Return(account, nil).Once()

	found, err := suite.service.GetAccountByName(ctx, services.AccountProcessorClearing)

	suite.Require().NoError(err)
	suite.Equal(account, found)
}

func (suite *AccountRegistryServiceTestSuite) TestGetAccountByName_NotFound() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByName", ctx, "No Such Account").Return(nil, apperrors.ErrNotFound).Once()

	found, err := suite.service.GetAccountByName(ctx, "No Such Account")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(found)
}

func (suite *AccountRegistryServiceTestSuite) TestRevenueAccountNameFor() {
	event := domain.EntityEvent
	suite.Equal("Event Revenue", services.RevenueAccountNameFor(&event))
	suite.Equal(services.AccountGeneralRevenue, services.RevenueAccountNameFor(nil))
}

func TestAccountRegistryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountRegistryServiceTestSuite))
}
