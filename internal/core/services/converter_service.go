package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type converterService struct {
	BaseService
	rateTable      portssvc.RateTableSvc
	currencyReader portssvc.CurrencyReaderSvc
}

// NewConverterService creates a converter over the rate table. currencyReader
// is only needed by ConvertByName.
func NewConverterService(rateTable portssvc.RateTableSvc, currencyReader portssvc.CurrencyReaderSvc) portssvc.ConverterSvc {
	return &converterService{rateTable: rateTable, currencyReader: currencyReader}
}

var _ portssvc.ConverterSvc = (*converterService)(nil)

// Convert computes amount * dest / source and rounds once, half away from
// zero, to domain.MoneyScale. Factors are never rounded.
func (s *converterService) Convert(ctx context.Context, sourceCurrencyID, destCurrencyID string, amount decimal.Decimal, asOf time.Time) (domain.Conversion, error) {
	if amount.IsNegative() {
		return domain.Conversion{}, apperrors.ErrInvalidAmount
	}

	source, err := s.rateTable.Resolve(ctx, sourceCurrencyID, asOf)
	if err != nil {
		return domain.Conversion{}, err
	}

	conv := domain.Conversion{
		SourceCurrencyID: sourceCurrencyID,
		DestCurrencyID:   destCurrencyID,
		Amount:           amount,
		SourceFactor:     source.Factor,
		AsOf:             asOf,
	}

	if sourceCurrencyID == destCurrencyID {
		conv.DestFactor = source.Factor
		conv.ConvertedAmount = amount
		return conv, nil
	}

	dest, err := s.rateTable.Resolve(ctx, destCurrencyID, asOf)
	if err != nil {
		return domain.Conversion{}, err
	}
	if !source.Factor.IsPositive() {
		// Stored rates are constrained positive; reaching this means corrupt data.
		err := fmt.Errorf("non-positive rate factor %s for currency %s", source.Factor, sourceCurrencyID)
		s.LogError(ctx, err, "Cannot convert")
		return domain.Conversion{}, err
	}

	conv.DestFactor = dest.Factor
	conv.ConvertedAmount = amount.Mul(dest.Factor).DivRound(source.Factor, domain.MoneyScale)

	s.LogDebug(ctx, "Converted amount",
		slog.String("source_currency_id", sourceCurrencyID),
		slog.String("dest_currency_id", destCurrencyID),
		slog.String("amount", amount.String()),
		slog.String("converted_amount", conv.ConvertedAmount.String()))
	return conv, nil
}

func (s *converterService) ConvertByName(ctx context.Context, sourceName, destName string, amount decimal.Decimal, asOf time.Time) (domain.Conversion, error) {
	source, err := s.currencyReader.GetCurrencyByName(ctx, sourceName)
	if err != nil {
		return domain.Conversion{}, err
	}
	dest, err := s.currencyReader.GetCurrencyByName(ctx, destName)
	if err != nil {
		return domain.Conversion{}, err
	}
	return s.Convert(ctx, source.CurrencyID, dest.CurrencyID, amount, asOf)
}
