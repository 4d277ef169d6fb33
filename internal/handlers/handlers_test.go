package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_service/internal/dto"
	"github.com/SscSPs/money_transfer_service/internal/handlers"
	"github.com/SscSPs/money_transfer_service/internal/middleware"
	"github.com/SscSPs/money_transfer_service/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	transferSvc *MockTransferService
	accountSvc  *MockAccountService
	currencySvc *MockCurrencyService
	rateSvc     *MockExchangeRateService
	converter   *MockConverter
	jwtSecret   string
	userID      string
}

// generateTestToken creates a signed JWT whose subject is userID, granting scopes.
func (suite *HandlerTestSuite) generateTestToken(userID string, scopes ...string) string {
	claims := jwt.MapClaims{
		"iss": "mts-test",
		"sub": userID,
		"exp": time.Now().Add(1 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	if len(scopes) > 0 {
		claims["scope"] = strings.Join(scopes, " ")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.transferSvc = new(MockTransferService)
	suite.accountSvc = new(MockAccountService)
	suite.currencySvc = new(MockCurrencyService)
	suite.rateSvc = new(MockExchangeRateService)
	suite.converter = new(MockConverter)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Transfer:     suite.transferSvc,
		Account:      suite.accountSvc,
		Currency:     suite.currencySvc,
		ExchangeRate: suite.rateSvc,
		Converter:    suite.converter,
	}, nil)
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	return suite.doWithToken(method, url, body, suite.generateTestToken(suite.userID))
}

func (suite *HandlerTestSuite) doWithToken(method, url string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func decimalEq(value string) interface{} {
	want := decimal.RequireFromString(value)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestMissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.accountSvc.AssertNotCalled(suite.T(), "ListAccountsForUser", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateTransfer_Success() {
	transfer := &domain.Transfer{
		TransferID:        uuid.NewString(),
		SenderAccountID:   "a1",
		ReceiverAccountID: "a2",
		Amount:            decimal.RequireFromString("100"),
		ConvertedAmount:   decimal.RequireFromString("90"),
		CreatedAt:         time.Now().UTC(),
	}
	suite.transferSvc.On("ExecuteTransfer", mock.Anything, suite.userID, "a1", "a2", decimalEq("100.00")).Return(transfer, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transfers", gin.H{
		"senderAccountID":   "a1",
		"receiverAccountID": "a2",
		"amount":            "100.00",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(transfer.TransferID, resp.TransferID)
	suite.Equal("100.0000", resp.Amount)
	suite.Equal("90.0000", resp.ConvertedAmount)
	suite.transferSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateTransfer_ErrorStatuses() {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"not owner", apperrors.ErrNotOwner, http.StatusForbidden},
		{"same account", apperrors.ErrSameAccount, http.StatusBadRequest},
		{"receiver missing", apperrors.ErrAccountNotFound, http.StatusNotFound},
		{"invalid amount", apperrors.ErrInvalidAmount, http.StatusBadRequest},
		{"insufficient balance", apperrors.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{"rate not found", apperrors.ErrRateNotFound, http.StatusUnprocessableEntity},
		{"storage failure", assertError("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.transferSvc.On("ExecuteTransfer", mock.Anything, suite.userID, "a1", "a2", mock.Anything).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/transfers", gin.H{
				"senderAccountID":   "a1",
				"receiverAccountID": "a2",
				"amount":            "1",
			})

			suite.Equal(tc.status, w.Code)
			if tc.status == http.StatusInternalServerError {
				suite.NotContains(w.Body.String(), "connection reset")
			}
		})
	}
}

func (suite *HandlerTestSuite) TestCreateTransfer_BadBody() {
	w := suite.do(http.MethodPost, "/api/v1/transfers", gin.H{"amount": "1"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.transferSvc.AssertNotCalled(suite.T(), "ExecuteTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListTransfers_PassesToken() {
	token := "abc"
	next := "def"
	suite.transferSvc.On("ListTransfersForUser", mock.Anything, suite.userID, 5, &token).Return([]domain.Transfer{}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transfers?limit=5&nextToken=abc", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransfersResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
	suite.transferSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListTransfers_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/api/v1/transfers?limit=1000", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetAccountBalance_Owner() {
	account := &domain.Account{AccountID: "acc", UserID: suite.userID}
	suite.accountSvc.On("GetAccount", mock.Anything, "acc").Return(account, nil).Once()
	suite.accountSvc.On("GetAccountBalance", mock.Anything, "acc").Return(decimal.RequireFromString("590"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc/balance", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("590.0000", resp.Balance)
	suite.accountSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetAccountBalance_NotOwner() {
	account := &domain.Account{AccountID: "acc", UserID: "someone-else"}
	suite.accountSvc.On("GetAccount", mock.Anything, "acc").Return(account, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc/balance", nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.accountSvc.AssertNotCalled(suite.T(), "GetAccountBalance", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_Duplicate() {
	suite.accountSvc.On("CreateAccount", mock.Anything, suite.userID, mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
		return r.CurrencyName == "USD"
	})).Return(nil, apperrors.ErrDuplicateAccount).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", gin.H{"currency": "USD"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestConvert_Success() {
	asOf := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	suite.converter.On("ConvertByName", mock.Anything, "USD", "EUR", decimalEq("1000"), mock.MatchedBy(asOf.Equal)).Return(domain.Conversion{
		Amount:          decimal.NewFromInt(1000),
		ConvertedAmount: decimal.NewFromInt(900),
		AsOf:            asOf,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/convert?from=USD&to=EUR&amount=1000&asOf=2024-03-02T00:00:00Z", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("900.0000", resp.ConvertedAmount)
	suite.converter.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestConvert_BadAmountAndMissingRate() {
	w := suite.do(http.MethodGet, "/api/v1/convert?from=USD&to=EUR&amount=lots", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.converter.On("ConvertByName", mock.Anything, "USD", "XYZ", mock.Anything, mock.Anything).Return(domain.Conversion{}, apperrors.ErrRateNotFound).Once()
	w = suite.do(http.MethodGet, "/api/v1/convert?from=USD&to=XYZ&amount=1", nil)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestIngestRate_CreatedThenSkipped() {
	suite.rateSvc.On("IngestRate", mock.Anything, mock.MatchedBy(func(q domain.RateQuote) bool {
		return q.QuoteCurrency == "EUR" && q.BaseCurrency == "USD"
	})).Return(true, nil).Once()
	suite.rateSvc.On("IngestRate", mock.Anything, mock.Anything).Return(false, nil).Once()

	feedToken := suite.generateTestToken("rate-feed", middleware.ScopeRatesIngest)
	body := gin.H{"quoteCurrency": "EUR", "baseCurrency": "USD", "rate": "0.9", "effectiveDate": "2024-03-01T00:00:00Z"}
	suite.Equal(http.StatusCreated, suite.doWithToken(http.MethodPost, "/api/v1/rates", body, feedToken).Code)
	suite.Equal(http.StatusOK, suite.doWithToken(http.MethodPost, "/api/v1/rates", body, feedToken).Code)
}

func (suite *HandlerTestSuite) TestIngestRate_OrdinaryUserForbidden() {
	body := gin.H{"quoteCurrency": "EUR", "baseCurrency": "USD", "rate": "9000", "effectiveDate": time.Now().Add(-time.Second).UTC().Format(time.RFC3339)}

	w := suite.do(http.MethodPost, "/api/v1/rates", body)
	suite.Equal(http.StatusForbidden, w.Code)

	otherScope := suite.generateTestToken(suite.userID, "transfers:write")
	w = suite.doWithToken(http.MethodPost, "/api/v1/rates", body, otherScope)
	suite.Equal(http.StatusForbidden, w.Code)

	suite.rateSvc.AssertNotCalled(suite.T(), "IngestRate", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListRates_ResolvesCurrencyNames() {
	eurID := "eur-id"
	suite.currencySvc.On("GetCurrencyByName", mock.Anything, "EUR").Return(&domain.Currency{CurrencyID: eurID, Name: "EUR"}, nil).Once()
	suite.rateSvc.On("ListRates", mock.Anything, mock.MatchedBy(func(f domain.RateFilter) bool {
		return f.CurrencyID != nil && *f.CurrencyID == eurID && f.BaseCurrencyID == nil && f.Limit == 100
	})).Return([]domain.ExchangeRate{{ExchangeRateID: "r1", CurrencyID: eurID}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/rates?currency=EUR", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 1)
}

func (suite *HandlerTestSuite) TestListRates_UnknownCurrency() {
	suite.currencySvc.On("GetCurrencyByName", mock.Anything, "NOPE").Return(nil, apperrors.ErrCurrencyNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/rates?base=NOPE", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.rateSvc.AssertNotCalled(suite.T(), "ListRates", mock.Anything, mock.Anything)
}

type assertError string

func (e assertError) Error() string { return string(e) }

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
