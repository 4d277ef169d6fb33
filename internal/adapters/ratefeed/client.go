// Package ratefeed pulls daily exchange-rate snapshots from an HTTP feed and
// hands them to rate ingestion.
package ratefeed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// maxBodyBytes caps how much of a feed response is read.
const maxBodyBytes = 4 << 20

var feedDate = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)

// Snapshot is one feed response: every rate is quoted against Base and is
// effective from Date (midnight UTC).
type Snapshot struct {
	Base  string
	Date  time.Time
	Rates map[string]decimal.Decimal
}

// Quotes flattens the snapshot into rate quotes ordered by currency name.
// A quote of the base against itself is dropped.
func (s Snapshot) Quotes() []domain.RateQuote {
	names := make([]string, 0, len(s.Rates))
	for name := range s.Rates {
		if name != s.Base {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	quotes := make([]domain.RateQuote, 0, len(names))
	for _, name := range names {
		quotes = append(quotes, domain.RateQuote{
			QuoteCurrency: name,
			BaseCurrency:  s.Base,
			Rate:          s.Rates[name],
			EffectiveDate: s.Date,
		})
	}
	return quotes
}

// feedResponse is the wire shape. Rates decode straight into decimals, so
// JSON numbers never pass through float64.
type feedResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Client fetches snapshots from a feed URL.
type Client struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewClient constructs a feed client with a per-request timeout.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch loads the current snapshot.
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	c.logger.DebugContext(ctx, "loading exchange rates", slog.String("url", c.url))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("building http request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	httpResponse, err := c.client.Do(request)
	if err != nil {
		return Snapshot{}, fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("http get: unexpected status %q", httpResponse.Status)
	}

	body, err := io.ReadAll(io.LimitReader(httpResponse.Body, maxBodyBytes))
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading json: %w", err)
	}

	return parseSnapshot(body)
}

func parseSnapshot(body []byte) (Snapshot, error) {
	var response feedResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return Snapshot{}, fmt.Errorf("decoding json: %w", err)
	}
	if response.Base == "" {
		return Snapshot{}, fmt.Errorf("feed response has no base currency")
	}

	m := feedDate.FindStringSubmatch(response.Date)
	if m == nil {
		return Snapshot{}, fmt.Errorf("feed date %q is not in yyyy-mm-dd format", response.Date)
	}
	date, err := time.Parse("2006-01-02", m[1]+"-"+m[2]+"-"+m[3])
	if err != nil {
		return Snapshot{}, fmt.Errorf("feed date %q: %w", response.Date, err)
	}

	return Snapshot{
		Base:  response.Base,
		Date:  date.UTC(),
		Rates: response.Rates,
	}, nil
}
