package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

var _ portsrepo.CurrencyRepositoryFacade = (*CurrencyCache)(nil)

// KV is the part of the redis client the cache uses. *redis.Client satisfies it.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CurrencyCache decorates a currency repository with a read-through redis
// cache. Currencies never change once stored, so entries are only ever
// added; the TTL just bounds memory. Redis failures degrade to the
// underlying repository.
type CurrencyCache struct {
	next   portsrepo.CurrencyRepositoryFacade
	client KV
	ttl    time.Duration
	logger *slog.Logger
}

func NewCurrencyCache(next portsrepo.CurrencyRepositoryFacade, client KV, ttl time.Duration, logger *slog.Logger) *CurrencyCache {
	return &CurrencyCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func keyForName(name string) string {
	return fmt.Sprintf("currency:name:%s", name)
}

func keyForID(id string) string {
	return fmt.Sprintf("currency:id:%s", id)
}

func (c *CurrencyCache) get(ctx context.Context, key string) (*domain.Currency, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("currency cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var currency domain.Currency
	if err := json.Unmarshal(raw, &currency); err != nil {
		c.logger.Warn("could not decode cached currency", "key", key, "error", err)
		return nil, false
	}
	return &currency, true
}

func (c *CurrencyCache) put(ctx context.Context, currency *domain.Currency) {
	raw, err := json.Marshal(currency)
	if err != nil {
		c.logger.Warn("could not encode currency for cache", "currency_id", currency.CurrencyID, "error", err)
		return
	}
	for _, key := range []string{keyForName(currency.Name), keyForID(currency.CurrencyID)} {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("currency cache write failed", "key", key, "error", err)
			return
		}
	}
}

func (c *CurrencyCache) FindCurrencyByName(ctx context.Context, name string) (*domain.Currency, error) {
	if currency, ok := c.get(ctx, keyForName(name)); ok {
		return currency, nil
	}
	currency, err := c.next.FindCurrencyByName(ctx, name)
	if err != nil {
		return nil, err
	}
	c.put(ctx, currency)
	return currency, nil
}

func (c *CurrencyCache) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	if currency, ok := c.get(ctx, keyForID(currencyID)); ok {
		return currency, nil
	}
	currency, err := c.next.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, err
	}
	c.put(ctx, currency)
	return currency, nil
}

// ListCurrencies is not cached; new currencies appear at any time.
func (c *CurrencyCache) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return c.next.ListCurrencies(ctx)
}

func (c *CurrencyCache) SaveCurrencyIfAbsent(ctx context.Context, currency domain.Currency) (*domain.Currency, error) {
	stored, err := c.next.SaveCurrencyIfAbsent(ctx, currency)
	if err != nil {
		return nil, err
	}
	c.put(ctx, stored)
	return stored, nil
}
