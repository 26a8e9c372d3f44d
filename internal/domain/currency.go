package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyConfig курс валюты: сколько локальных единиц стоит одна единица валюты
type CurrencyConfig struct {
	ID        int64
	Currency  Currency
	Name      string
	Rate      decimal.Decimal
	UpdatedAt time.Time
}
