package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	productRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/product"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPriceOne_ForeignInsured(t *testing.T) {
	quote, err := PriceOne(dec("100"), domain.CurrencyForeign, true, Rates{Foreign: dec("2.0")})
	require.NoError(t, err)

	assert.True(t, quote.Original.Equal(dec("50")), quote.Original.String())
	assert.True(t, RoundMoney(quote.WithInsurance).Equal(dec("57.50")), quote.WithInsurance.String())
}

func TestPriceOne_LocalWithoutInsurance(t *testing.T) {
	quote, err := PriceOne(dec("80"), domain.CurrencyLocal, false, Rates{})
	require.NoError(t, err)

	assert.True(t, quote.WithInsurance.Equal(dec("80")))
	assert.True(t, quote.Original.Equal(quote.WithInsurance))
}

func TestPriceOne_MissingForeignRate(t *testing.T) {
	_, err := PriceOne(dec("100"), domain.CurrencyForeign, false, Rates{})
	assert.ErrorIs(t, err, ErrExchangeRateNotConfigured)
}

func TestDiscountEligible(t *testing.T) {
	assert.False(t, DiscountEligible(0))
	assert.False(t, DiscountEligible(1))
	assert.True(t, DiscountEligible(2))
	assert.True(t, DiscountEligible(5))
	assert.Equal(t, 10, DiscountPercent(true))
	assert.Equal(t, 0, DiscountPercent(false))
}

func TestRoundMoney(t *testing.T) {
	assert.True(t, RoundMoney(dec("72.005")).Equal(dec("72.01")))
	assert.True(t, RoundMoney(dec("28.754")).Equal(dec("28.75")))
}

func TestPriceBatch_SingleItemWithDiscount(t *testing.T) {
	alloc, err := PriceBatch([]Item{
		{ReservationID: 1, BasePrice: dec("80"), Currency: domain.CurrencyLocal, PaymentMethod: domain.PaymentCash},
	}, true, Rates{})
	require.NoError(t, err)

	item, ok := alloc.Item(1)
	require.True(t, ok)
	assert.True(t, RoundMoney(item.Final).Equal(dec("72.00")), item.Final.String())
	assert.True(t, alloc.DiscountApplied)
	assert.Equal(t, 10, alloc.DiscountPercent)
}

func TestPriceBatch_DiscountAdditivityAcrossPairs(t *testing.T) {
	rates := Rates{Foreign: dec("3.7")}
	items := []Item{
		{ReservationID: 1, BasePrice: dec("80"), Currency: domain.CurrencyLocal, PaymentMethod: domain.PaymentCash, IncludesInsurance: true},
		{ReservationID: 2, BasePrice: dec("60"), Currency: domain.CurrencyLocal, PaymentMethod: domain.PaymentTransfer},
		{ReservationID: 3, BasePrice: dec("45"), Currency: domain.CurrencyForeign, PaymentMethod: domain.PaymentCash, IncludesInsurance: true},
		{ReservationID: 4, BasePrice: dec("33.33"), Currency: domain.CurrencyForeign, PaymentMethod: domain.PaymentCash},
	}

	alloc, err := PriceBatch(items, true, rates)
	require.NoError(t, err)
	require.Len(t, alloc.Pairs, 3)

	sumShares := decimal.Zero
	sumSubtotals := decimal.Zero
	for _, p := range alloc.Pairs {
		sumShares = sumShares.Add(p.ShareLocal)
		sumSubtotals = sumSubtotals.Add(p.SubtotalLocal)
	}
	expected := sumSubtotals.Mul(dec("0.9"))
	assert.True(t, sumShares.Sub(expected).Abs().LessThanOrEqual(dec("0.01")),
		"shares=%s expected=%s", sumShares, expected)

	// Доля каждой пары в её валюте равна 90% её суммы до скидки
	for _, p := range alloc.Pairs {
		assert.True(t, p.Share.Sub(p.Subtotal.Mul(dec("0.9"))).Abs().LessThanOrEqual(dec("0.01")),
			"pair %v share=%s subtotal=%s", p.Pair, p.Share, p.Subtotal)
	}

	// Позиции в сумме дают итог пары
	for _, p := range alloc.Pairs {
		sum := decimal.Zero
		for _, id := range p.ReservationIDs {
			item, ok := alloc.Item(id)
			require.True(t, ok)
			sum = sum.Add(item.Final)
		}
		assert.True(t, sum.Sub(p.Share).Abs().LessThanOrEqual(dec("0.01")))
	}
}

func TestPriceBatch_WithoutDiscount(t *testing.T) {
	alloc, err := PriceBatch([]Item{
		{ReservationID: 1, BasePrice: dec("30"), Currency: domain.CurrencyLocal, PaymentMethod: domain.PaymentCash},
	}, false, Rates{})
	require.NoError(t, err)

	assert.True(t, alloc.DiscountedTotalLocal.Equal(dec("30")))
	assert.Equal(t, 0, alloc.DiscountPercent)
}

func TestPriceBatch_TotalsByCurrency(t *testing.T) {
	alloc, err := PriceBatch([]Item{
		{ReservationID: 1, BasePrice: dec("100"), Currency: domain.CurrencyLocal, PaymentMethod: domain.PaymentCash},
		{ReservationID: 2, BasePrice: dec("100"), Currency: domain.CurrencyForeign, PaymentMethod: domain.PaymentCash},
	}, true, Rates{Foreign: dec("2")})
	require.NoError(t, err)

	totals := alloc.TotalsByCurrency()
	assert.True(t, RoundMoney(totals[domain.CurrencyLocal]).Equal(dec("90")))
	assert.True(t, RoundMoney(totals[domain.CurrencyForeign]).Equal(dec("45")))
	assert.True(t, RoundMoney(alloc.DiscountedTotalLocal).Equal(dec("180")))
}

func TestPriceBatch_Empty(t *testing.T) {
	_, err := PriceBatch(nil, false, Rates{})
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

type mockRateProvider struct {
	mock.Mock
}

func (m *mockRateProvider) GetCurrencyConfig(ctx context.Context, currency domain.Currency) (*domain.CurrencyConfig, error) {
	args := m.Called(ctx, currency)
	if cfg := args.Get(0); cfg != nil {
		return cfg.(*domain.CurrencyConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRateLoader_Load(t *testing.T) {
	t.Run("local only does not query", func(t *testing.T) {
		provider := &mockRateProvider{}
		rates, err := NewRateLoader(provider).Load(context.Background(), false)
		require.NoError(t, err)
		assert.True(t, rates.Foreign.IsZero())
		provider.AssertNotCalled(t, "GetCurrencyConfig", mock.Anything, mock.Anything)
	})

	t.Run("missing rate is a configuration error", func(t *testing.T) {
		provider := &mockRateProvider{}
		provider.On("GetCurrencyConfig", mock.Anything, domain.CurrencyForeign).Return(nil, productRepo.ErrCurrencyNotFound)
		_, err := NewRateLoader(provider).Load(context.Background(), true)
		assert.ErrorIs(t, err, ErrExchangeRateNotConfigured)
	})

	t.Run("storage failure is internal", func(t *testing.T) {
		provider := &mockRateProvider{}
		provider.On("GetCurrencyConfig", mock.Anything, domain.CurrencyForeign).Return(nil, errors.New("db down"))
		_, err := NewRateLoader(provider).Load(context.Background(), true)
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("configured rate", func(t *testing.T) {
		provider := &mockRateProvider{}
		provider.On("GetCurrencyConfig", mock.Anything, domain.CurrencyForeign).
			Return(&domain.CurrencyConfig{Currency: domain.CurrencyForeign, Rate: dec("2")}, nil)
		rates, err := NewRateLoader(provider).Load(context.Background(), true)
		require.NoError(t, err)
		assert.True(t, rates.Foreign.Equal(dec("2")))
	})
}
