package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	productRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/product"
)

// Rates курсы пересчёта. Foreign: сколько локальных единиц стоит одна иностранная
type Rates struct {
	Foreign decimal.Decimal
}

// ToCharge переводит локальную сумму в валюту оплаты
func (r Rates) ToCharge(local decimal.Decimal, currency domain.Currency) (decimal.Decimal, error) {
	if currency != domain.CurrencyForeign {
		return local, nil
	}
	if !r.Foreign.IsPositive() {
		return decimal.Zero, ErrExchangeRateNotConfigured
	}
	return local.Div(r.Foreign), nil
}

// ToLocal переводит сумму в валюте оплаты в локальный эквивалент
func (r Rates) ToLocal(amount decimal.Decimal, currency domain.Currency) (decimal.Decimal, error) {
	if currency != domain.CurrencyForeign {
		return amount, nil
	}
	if !r.Foreign.IsPositive() {
		return decimal.Zero, ErrExchangeRateNotConfigured
	}
	return amount.Mul(r.Foreign), nil
}

// RateProvider источник курсов (кэш Redis поверх репозитория каталога)
type RateProvider interface {
	GetCurrencyConfig(ctx context.Context, currency domain.Currency) (*domain.CurrencyConfig, error)
}

// RateLoader загружает курсы для расчёта
type RateLoader struct {
	provider RateProvider
}

func NewRateLoader(provider RateProvider) *RateLoader {
	return &RateLoader{provider: provider}
}

// Load загружает курс иностранной валюты, если он нужен.
// Отсутствующий курс не подменяется единицей
func (l *RateLoader) Load(ctx context.Context, needForeign bool) (Rates, error) {
	if !needForeign {
		return Rates{}, nil
	}

	cfg, err := l.provider.GetCurrencyConfig(ctx, domain.CurrencyForeign)
	if err != nil {
		if errors.Is(err, productRepo.ErrCurrencyNotFound) {
			return Rates{}, ErrExchangeRateNotConfigured
		}
		return Rates{}, fmt.Errorf("%w: load exchange rate: %v", ErrInternal, err)
	}
	if !cfg.Rate.IsPositive() {
		return Rates{}, fmt.Errorf("%w: non-positive rate %s", ErrExchangeRateNotConfigured, cfg.Rate)
	}

	return Rates{Foreign: cfg.Rate}, nil
}
