package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client клиент проката
type Client struct {
	ID             int64
	Name           string
	DocumentNumber string
	CreatedAt      time.Time
}

// Balance накопленный кредит клиента после отмен и штормовых возвратов
type Balance struct {
	ClientID  int64
	Local     decimal.Decimal
	Foreign   decimal.Decimal
	UpdatedAt time.Time
}

// Credit увеличивает баланс в указанной валюте
func (b *Balance) Credit(currency Currency, amount decimal.Decimal) {
	if currency == CurrencyForeign {
		b.Foreign = b.Foreign.Add(amount)
		return
	}
	b.Local = b.Local.Add(amount)
}

// Amount возвращает баланс в указанной валюте
func (b *Balance) Amount(currency Currency) decimal.Decimal {
	if currency == CurrencyForeign {
		return b.Foreign
	}
	return b.Local
}
