package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_service/internal/core/services"
	"github.com/SscSPs/money_transfer_service/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockAccountRepository
	mockCurrency *MockCurrencyService
	service      portssvc.AccountSvcFacade
	usd          *domain.Currency
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockCurrency = new(MockCurrencyService)
	suite.service = services.NewAccountService(suite.mockRepo, suite.mockCurrency)
	suite.usd = &domain.Currency{CurrencyID: uuid.NewString(), Name: "USD"}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateAccountRequest{CurrencyName: "USD", InitialBalance: decimal.RequireFromString("1000.00")}

	suite.mockCurrency.On("GetCurrencyByName", ctx, "USD").Return(suite.usd, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.UserID == userID && a.CurrencyID == suite.usd.CurrencyID && a.Balance.Equal(req.InitialBalance)
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Equal(userID, account.UserID)
	suite.NotEmpty(account.AccountID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCurrency.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidBalance() {
	ctx := context.Background()

	for _, balance := range []string{"-0.01", "1.00001"} {
		account, err := suite.service.CreateAccount(ctx, "user", dto.CreateAccountRequest{
			CurrencyName:   "USD",
			InitialBalance: decimal.RequireFromString(balance),
		})
		suite.Nil(account)
		suite.ErrorIs(err, apperrors.ErrInvalidAmount, balance)
	}
	suite.mockCurrency.AssertNotCalled(suite.T(), "GetCurrencyByName", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownCurrency() {
	ctx := context.Background()
	suite.mockCurrency.On("GetCurrencyByName", ctx, "XYZ").Return(nil, apperrors.ErrCurrencyNotFound).Once()

	account, err := suite.service.CreateAccount(ctx, "user", dto.CreateAccountRequest{CurrencyName: "XYZ"})

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrCurrencyNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Duplicate() {
	ctx := context.Background()
	suite.mockCurrency.On("GetCurrencyByName", ctx, "USD").Return(suite.usd, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicateAccount).Once()

	account, err := suite.service.CreateAccount(ctx, "user", dto.CreateAccountRequest{CurrencyName: "USD"})

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicateAccount)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_MissingUser() {
	account, err := suite.service.CreateAccount(context.Background(), "", dto.CreateAccountRequest{CurrencyName: "USD"})

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestGetAccountBalance() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "acc", Balance: decimal.RequireFromString("12.3400")}
	suite.mockRepo.On("FindAccountByID", ctx, "acc").Return(account, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	balance, err := suite.service.GetAccountBalance(ctx, "acc")
	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("12.34")))

	_, err = suite.service.GetAccountBalance(ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccountsForUser() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccountsByUser", ctx, "nobody").Return(nil, nil).Once()
	suite.mockRepo.On("ListAccountsByUser", ctx, "broken").Return(nil, assert.AnError).Once()

	accounts, err := suite.service.ListAccountsForUser(ctx, "nobody")
	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)

	_, err = suite.service.ListAccountsForUser(ctx, "broken")
	suite.ErrorIs(err, assert.AnError)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
