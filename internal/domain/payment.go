package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment неизменяемая запись об оплате бронирования
type Payment struct {
	ID              int64
	ReservationID   int64
	Amount          decimal.Decimal // Округлено до MoneyScale знаков
	Currency        Currency
	PaymentMethod   PaymentMethod
	DiscountApplied bool
	DiscountPercent int
	CreatedAt       time.Time
}
