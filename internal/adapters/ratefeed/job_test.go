package ratefeed

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context) (Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(Snapshot), args.Error(1)
}

type MockIngester struct {
	mock.Mock
}

func (m *MockIngester) IngestRates(ctx context.Context, quotes []domain.RateQuote) (portssvc.IngestSummary, error) {
	args := m.Called(ctx, quotes)
	return args.Get(0).(portssvc.IngestSummary), args.Error(1)
}

func TestJob_RunIngestsSnapshot(t *testing.T) {
	snap := Snapshot{
		Base:  "USD",
		Date:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Rates: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.9")},
	}
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything).Return(snap, nil).Once()
	ingester := new(MockIngester)
	ingester.On("IngestRates", mock.Anything, mock.MatchedBy(func(q []domain.RateQuote) bool {
		return len(q) == 1 && q[0].QuoteCurrency == "EUR" && q[0].BaseCurrency == "USD"
	})).Return(portssvc.IngestSummary{Received: 1, Ingested: 1}, nil).Once()

	summary, err := NewJob(fetcher, ingester, time.Second, slog.Default()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Ingested)
	fetcher.AssertExpectations(t)
	ingester.AssertExpectations(t)
}

func TestJob_RunStopsOnFetchError(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything).Return(Snapshot{}, errors.New("feed down")).Once()
	ingester := new(MockIngester)

	_, err := NewJob(fetcher, ingester, 0, slog.Default()).Run(context.Background())
	assert.ErrorContains(t, err, "feed down")
	ingester.AssertNotCalled(t, "IngestRates", mock.Anything, mock.Anything)
}

func TestSchedule_ValidatesSpec(t *testing.T) {
	c := cron.New()
	job := NewJob(new(MockFetcher), new(MockIngester), 0, slog.Default())

	_, err := Schedule(context.Background(), c, "@every 3m", job)
	assert.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = Schedule(context.Background(), c, "not a spec", job)
	assert.Error(t, err)
}
