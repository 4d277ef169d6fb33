package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_service/internal/dto"
	"github.com/SscSPs/money_transfer_service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// exchangeRateHandler handles HTTP requests related to exchange rates and conversion quotes.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	currencyService     portssvc.CurrencyReaderSvc
	converter           portssvc.ConverterSvc
	now                 func() time.Time
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade, cs portssvc.CurrencyReaderSvc, conv portssvc.ConverterSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
		currencyService:     cs,
		converter:           conv,
		now:                 time.Now,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, ers portssvc.ExchangeRateSvcFacade, cs portssvc.CurrencyReaderSvc, conv portssvc.ConverterSvc) {
	h := newExchangeRateHandler(ers, cs, conv)

	rates := rg.Group("/rates")
	{
		rates.POST("", middleware.RequireScope(middleware.ScopeRatesIngest), h.ingestRate)
		rates.GET("", h.listRates)
	}
	rg.GET("/convert", h.convert)
}

// ingestRate godoc
// @Summary Ingest an exchange rate
// @Description Appends a rate for (quote, base, effective date). Unknown currencies are created. A rate for an existing triple is skipped. Requires a token with the rates:ingest scope.
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.IngestRateRequest true "Exchange rate"
// @Success 201 {object} dto.IngestRateResponse "Rate stored"
// @Success 200 {object} dto.IngestRateResponse "Rate already present, skipped"
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Token lacks the rates:ingest scope"
// @Failure 500 {object} map[string]string "Failed to ingest exchange rate"
// @Security BearerAuth
// @Router /rates [post]
func (h *exchangeRateHandler) ingestRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IngestRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IngestRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to ingest exchange rate",
		slog.String("quote", req.QuoteCurrency),
		slog.String("base", req.BaseCurrency),
		slog.String("rate", req.Rate.String()),
		slog.Time("effective_date", req.EffectiveDate),
	)

	ingested, err := h.exchangeRateService.IngestRate(c.Request.Context(), req.ToRateQuote())
	if err != nil {
		respondError(c, logger, err, "Failed to ingest exchange rate")
		return
	}

	status := http.StatusOK
	if ingested {
		status = http.StatusCreated
	}
	c.JSON(status, dto.IngestRateResponse{Ingested: ingested})
}

// listRates godoc
// @Summary List exchange rates
// @Description Lists stored rates, newest effective date first. Currency filters take names.
// @Tags exchange rates
// @Produce  json
// @Param   currency query string false "Quote currency name"
// @Param   base query string false "Base currency name"
// @Param   before query string false "Only rates effective strictly before this RFC3339 time"
// @Param   limit query int false "Maximum number of rates" default(100)
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Security BearerAuth
// @Router /rates [get]
func (h *exchangeRateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListRates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.RateFilter{Before: params.Before, Limit: params.Limit}
	if params.Currency != "" {
		cur, err := h.currencyService.GetCurrencyByName(c.Request.Context(), params.Currency)
		if err != nil {
			respondError(c, logger, err, "Failed to list exchange rates")
			return
		}
		filter.CurrencyID = &cur.CurrencyID
	}
	if params.BaseCurrency != "" {
		cur, err := h.currencyService.GetCurrencyByName(c.Request.Context(), params.BaseCurrency)
		if err != nil {
			respondError(c, logger, err, "Failed to list exchange rates")
			return
		}
		filter.BaseCurrencyID = &cur.CurrencyID
	}

	rates, err := h.exchangeRateService.ListRates(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to list exchange rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// convert godoc
// @Summary Quote a currency conversion
// @Description Converts an amount between two currencies using the rates known strictly before asOf (default: now). Nothing is stored.
// @Tags exchange rates
// @Produce  json
// @Param   from query string true "Source currency name"
// @Param   to query string true "Destination currency name"
// @Param   amount query string true "Amount in the source currency"
// @Param   asOf query string false "RFC3339 point in time"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid query parameters or amount"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 422 {object} map[string]string "Exchange rate not found"
// @Failure 500 {object} map[string]string "Failed to convert amount"
// @Security BearerAuth
// @Router /convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ConvertParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		respondError(c, logger, apperrors.ErrInvalidAmount, "Failed to convert amount")
		return
	}

	asOf := h.now()
	if params.AsOf != nil {
		asOf = *params.AsOf
	}

	conversion, err := h.converter.ConvertByName(c.Request.Context(), params.From, params.To, amount, asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to convert amount")
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(params.From, params.To, conversion))
}
