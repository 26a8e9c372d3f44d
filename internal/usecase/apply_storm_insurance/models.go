package apply_storm_insurance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на применение штормовой страховки
type Request struct {
	ClientID int64
}

// Response результат: отмененные бронирования и возвраты по валютам
type Response struct {
	ClientID       int64
	CancelledCount int
	LocalRefund    decimal.Decimal
	ForeignRefund  decimal.Decimal
	Items          []Item
	Balance        Balance
	WindowFrom     time.Time
	WindowTo       time.Time
	AppliedAt      time.Time
}

// Item отмененное бронирование
type Item struct {
	ReservationID int64
	SlotID        int64
	SlotStartsAt  time.Time
	PaidAmount    decimal.Decimal
	Refund        decimal.Decimal
	Currency      string
}

// Balance баланс клиента после возвратов
type Balance struct {
	Local   decimal.Decimal
	Foreign decimal.Decimal
}
