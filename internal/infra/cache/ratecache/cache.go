package ratecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

const keyPrefix = "rental:rate:"

// RateSource источник курсов (репозиторий каталога)
type RateSource interface {
	GetCurrencyConfig(ctx context.Context, currency domain.Currency) (*domain.CurrencyConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cache кэширует курсы валют в Redis поверх RateSource.
// При недоступности Redis запросы уходят напрямую в источник
type Cache struct {
	client *redis.Client
	source RateSource
	ttl    time.Duration
	logger Logger
}

// New создает кэш. client может быть nil: тогда кэш прозрачно проксирует источник
func New(client *redis.Client, source RateSource, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		client: client,
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

type cachedRate struct {
	ID       int64  `json:"id"`
	Currency string `json:"currency"`
	Name     string `json:"name"`
	Rate     string `json:"rate"`
}

// GetCurrencyConfig возвращает курс из кэша или из источника
func (c *Cache) GetCurrencyConfig(ctx context.Context, currency domain.Currency) (*domain.CurrencyConfig, error) {
	if c.client == nil {
		return c.source.GetCurrencyConfig(ctx, currency)
	}

	key := keyPrefix + string(currency)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		cfg, decodeErr := decode(raw)
		if decodeErr == nil {
			return cfg, nil
		}
		c.logger.Warn("RateCache: corrupted entry key=%s: %v", key, decodeErr)
	case errors.Is(err, redis.Nil):
		// промах кэша
	default:
		c.logger.Warn("RateCache: redis get failed key=%s, falling back to source: %v", key, err)
	}

	cfg, err := c.source.GetCurrencyConfig(ctx, currency)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(cachedRate{
		ID:       cfg.ID,
		Currency: string(cfg.Currency),
		Name:     cfg.Name,
		Rate:     cfg.Rate.String(),
	})
	if err == nil {
		if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.logger.Warn("RateCache: redis set failed key=%s: %v", key, setErr)
		}
	}

	return cfg, nil
}

// Invalidate удаляет курс из кэша
func (c *Cache) Invalidate(ctx context.Context, currency domain.Currency) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keyPrefix+string(currency)).Err()
}

func decode(raw []byte) (*domain.CurrencyConfig, error) {
	var cached cachedRate
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, err
	}
	rate, err := decimal.NewFromString(cached.Rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", cached.Rate, err)
	}
	return &domain.CurrencyConfig{
		ID:       cached.ID,
		Currency: domain.Currency(cached.Currency),
		Name:     cached.Name,
		Rate:     rate,
	}, nil
}
