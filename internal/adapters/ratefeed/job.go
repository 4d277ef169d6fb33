package ratefeed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// Fetcher loads a snapshot; *Client is the production implementation.
type Fetcher interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

// RateIngester is the slice of the exchange-rate service the job needs.
type RateIngester interface {
	IngestRates(ctx context.Context, quotes []domain.RateQuote) (portssvc.IngestSummary, error)
}

// Job fetches one snapshot and ingests it.
type Job struct {
	fetcher  Fetcher
	ingester RateIngester
	timeout  time.Duration
	logger   *slog.Logger
}

func NewJob(fetcher Fetcher, ingester RateIngester, timeout time.Duration, logger *slog.Logger) *Job {
	return &Job{
		fetcher:  fetcher,
		ingester: ingester,
		timeout:  timeout,
		logger:   logger,
	}
}

// Run performs a single fetch and ingest. Rates already stored are skipped,
// so overlapping or repeated runs are harmless.
func (j *Job) Run(ctx context.Context) (portssvc.IngestSummary, error) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	snapshot, err := j.fetcher.Fetch(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "rate feed fetch failed", slog.String("error", err.Error()))
		return portssvc.IngestSummary{}, fmt.Errorf("fetching rates: %w", err)
	}

	summary, err := j.ingester.IngestRates(ctx, snapshot.Quotes())
	if err != nil {
		j.logger.ErrorContext(ctx, "rate feed ingestion failed",
			slog.String("base", snapshot.Base),
			slog.Int("ingested", summary.Ingested),
			slog.String("error", err.Error()))
		return summary, fmt.Errorf("ingesting rates: %w", err)
	}

	j.logger.InfoContext(ctx, "rate feed ingested",
		slog.String("base", snapshot.Base),
		slog.Time("date", snapshot.Date),
		slog.Int("received", summary.Received),
		slog.Int("ingested", summary.Ingested),
		slog.Int("skipped", summary.Skipped),
		slog.Int("rejected", summary.Rejected))
	return summary, nil
}

// Schedule registers the job on c under a cron spec such as "@every 3m".
// Runs that are still busy when the next tick fires are skipped.
func Schedule(ctx context.Context, c *cron.Cron, spec string, job *Job) (cron.EntryID, error) {
	wrapped := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		_, _ = job.Run(ctx)
	}))
	id, err := c.AddJob(spec, wrapped)
	if err != nil {
		return 0, fmt.Errorf("scheduling rate feed %q: %w", spec, err)
	}
	return id, nil
}
