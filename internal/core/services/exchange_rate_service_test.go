package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_service/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockExchangeRateRepository
	mockCurrency *MockCurrencyService
	service      portssvc.ExchangeRateSvcFacade
	usd          *domain.Currency
	eur          *domain.Currency
	effective    time.Time
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExchangeRateRepository)
	suite.mockCurrency = new(MockCurrencyService)
	suite.service = services.NewExchangeRateService(suite.mockRepo, suite.mockCurrency)
	suite.usd = &domain.Currency{CurrencyID: "usd-id", Name: "USD"}
	suite.eur = &domain.Currency{CurrencyID: "eur-id", Name: "EUR"}
	suite.effective = time.Date(2024, 3, 1, 0, 0, 0, 0, time.FixedZone("CET", 3600))
}

func (suite *ExchangeRateServiceTestSuite) quote(rate string) domain.RateQuote {
	return domain.RateQuote{
		QuoteCurrency: "EUR",
		BaseCurrency:  "USD",
		Rate:          decimal.RequireFromString(rate),
		EffectiveDate: suite.effective,
	}
}

func (suite *ExchangeRateServiceTestSuite) expectCurrencies() {
	suite.mockCurrency.On("EnsureCurrency", mock.Anything, "EUR").Return(suite.eur, nil)
	suite.mockCurrency.On("EnsureCurrency", mock.Anything, "USD").Return(suite.usd, nil)
}

func (suite *ExchangeRateServiceTestSuite) TestIngestRate_Success() {
	ctx := context.Background()
	suite.expectCurrencies()
	suite.mockRepo.On("SaveExchangeRateIfAbsent", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.CurrencyID == "eur-id" &&
			r.BaseCurrencyID == "usd-id" &&
			r.Rate.Equal(decimal.RequireFromString("0.9012")) &&
			r.DateEffective.Equal(suite.effective) &&
			r.DateEffective.Location() == time.UTC &&
			r.ExchangeRateID != ""
	})).Return(true, nil).Once()

	ingested, err := suite.service.IngestRate(ctx, suite.quote("0.90123"))

	suite.Require().NoError(err)
	suite.True(ingested)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCurrency.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestIngestRate_DuplicateIsSkipped() {
	ctx := context.Background()
	suite.expectCurrencies()
	suite.mockRepo.On("SaveExchangeRateIfAbsent", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(false, nil).Once()

	ingested, err := suite.service.IngestRate(ctx, suite.quote("0.9"))

	suite.Require().NoError(err)
	suite.False(ingested)
}

func (suite *ExchangeRateServiceTestSuite) TestIngestRate_Invalid() {
	ctx := context.Background()

	testCases := []struct {
		name  string
		quote domain.RateQuote
	}{
		{"zero rate", suite.quote("0")},
		{"negative rate", suite.quote("-1.5")},
		{"rounds to zero", suite.quote("0.00001")},
		{"same currencies", domain.RateQuote{QuoteCurrency: "USD", BaseCurrency: "USD", Rate: decimal.NewFromInt(1), EffectiveDate: suite.effective}},
		{"missing quote", domain.RateQuote{BaseCurrency: "USD", Rate: decimal.NewFromInt(1), EffectiveDate: suite.effective}},
		{"missing date", domain.RateQuote{QuoteCurrency: "EUR", BaseCurrency: "USD", Rate: decimal.NewFromInt(1)}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			ingested, err := suite.service.IngestRate(ctx, tc.quote)
			suite.False(ingested)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExchangeRateIfAbsent", mock.Anything, mock.Anything)
	suite.mockCurrency.AssertNotCalled(suite.T(), "EnsureCurrency", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestIngestRates_Summary() {
	ctx := context.Background()
	suite.expectCurrencies()
	suite.mockRepo.On("SaveExchangeRateIfAbsent", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(true, nil).Once()
	suite.mockRepo.On("SaveExchangeRateIfAbsent", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(false, nil).Once()

	summary, err := suite.service.IngestRates(ctx, []domain.RateQuote{suite.quote("0.9"), suite.quote("0.9")})

	suite.Require().NoError(err)
	suite.Equal(portssvc.IngestSummary{Received: 2, Ingested: 1, Skipped: 1}, summary)
}

func (suite *ExchangeRateServiceTestSuite) TestIngestRates_InvalidQuoteDoesNotStopBatch() {
	ctx := context.Background()
	gbp := &domain.Currency{CurrencyID: "gbp-id", Name: "GBP"}
	suite.expectCurrencies()
	suite.mockCurrency.On("EnsureCurrency", mock.Anything, "GBP").Return(gbp, nil)
	suite.mockRepo.On("SaveExchangeRateIfAbsent", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(true, nil).Twice()

	btc := suite.quote("0.0000158")
	btc.QuoteCurrency = "BTC"
	gbpQuote := suite.quote("0.8")
	gbpQuote.QuoteCurrency = "GBP"

	summary, err := suite.service.IngestRates(ctx, []domain.RateQuote{btc, suite.quote("0.9"), gbpQuote})

	suite.Require().NoError(err)
	suite.Equal(portssvc.IngestSummary{Received: 3, Ingested: 2, Rejected: 1}, summary)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveExchangeRateIfAbsent", 2)
	suite.mockCurrency.AssertNotCalled(suite.T(), "EnsureCurrency", mock.Anything, "BTC")
}

func (suite *ExchangeRateServiceTestSuite) TestIngestRates_AbortsOnStorageError() {
	ctx := context.Background()
	suite.expectCurrencies()
	suite.mockRepo.On("SaveExchangeRateIfAbsent", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(true, nil).Once()
	suite.mockRepo.On("SaveExchangeRateIfAbsent", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(false, assert.AnError).Once()

	summary, err := suite.service.IngestRates(ctx, []domain.RateQuote{suite.quote("0.9"), suite.quote("0"), suite.quote("0.8"), suite.quote("0.7")})

	suite.ErrorIs(err, assert.AnError)
	suite.Equal(portssvc.IngestSummary{Received: 4, Ingested: 1, Rejected: 1}, summary)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveExchangeRateIfAbsent", 2)
}

func (suite *ExchangeRateServiceTestSuite) TestIngestRate_SaveError() {
	ctx := context.Background()
	suite.expectCurrencies()
	suite.mockRepo.On("SaveExchangeRateIfAbsent", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(false, assert.AnError).Once()

	_, err := suite.service.IngestRate(ctx, suite.quote("0.9"))

	suite.ErrorIs(err, assert.AnError)
}

func (suite *ExchangeRateServiceTestSuite) TestListRates_ClampsLimit() {
	ctx := context.Background()
	suite.mockRepo.On("ListExchangeRates", ctx, domain.RateFilter{Limit: 100}).Return(nil, nil).Once()
	suite.mockRepo.On("ListExchangeRates", ctx, domain.RateFilter{Limit: 1000}).Return([]domain.ExchangeRate{{ExchangeRateID: "r1"}}, nil).Once()

	rates, err := suite.service.ListRates(ctx, domain.RateFilter{})
	suite.Require().NoError(err)
	suite.NotNil(rates)
	suite.Empty(rates)

	rates, err = suite.service.ListRates(ctx, domain.RateFilter{Limit: 5000})
	suite.Require().NoError(err)
	suite.Len(rates, 1)

	suite.mockRepo.AssertExpectations(suite.T())
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
