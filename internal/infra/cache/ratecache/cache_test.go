package ratecache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) GetCurrencyConfig(ctx context.Context, currency domain.Currency) (*domain.CurrencyConfig, error) {
	args := m.Called(ctx, currency)
	if cfg := args.Get(0); cfg != nil {
		return cfg.(*domain.CurrencyConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func foreignRate() *domain.CurrencyConfig {
	return &domain.CurrencyConfig{ID: 2, Currency: domain.CurrencyForeign, Name: "USD", Rate: decimal.NewFromInt(2)}
}

func TestCache_NilClientPassesThrough(t *testing.T) {
	source := &mockSource{}
	source.On("GetCurrencyConfig", mock.Anything, domain.CurrencyForeign).Return(foreignRate(), nil).Twice()

	cache := New(nil, source, time.Minute, nopLogger{})

	for i := 0; i < 2; i++ {
		cfg, err := cache.GetCurrencyConfig(context.Background(), domain.CurrencyForeign)
		require.NoError(t, err)
		assert.True(t, cfg.Rate.Equal(decimal.NewFromInt(2)))
	}
	source.AssertExpectations(t)
	assert.NoError(t, cache.Invalidate(context.Background(), domain.CurrencyForeign))
}

func TestCache_UnreachableRedisFallsBackToSource(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	source := &mockSource{}
	source.On("GetCurrencyConfig", mock.Anything, domain.CurrencyForeign).Return(foreignRate(), nil)

	cache := New(client, source, time.Minute, nopLogger{})

	cfg, err := cache.GetCurrencyConfig(context.Background(), domain.CurrencyForeign)
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Name)
	source.AssertExpectations(t)
}

func TestDecode(t *testing.T) {
	cfg, err := decode([]byte(`{"id":2,"currency":"FOREIGN","name":"USD","rate":"2.5"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyForeign, cfg.Currency)
	assert.True(t, cfg.Rate.Equal(decimal.RequireFromString("2.5")))

	_, err = decode([]byte(`{"rate":"abc"}`))
	assert.Error(t, err)
}
