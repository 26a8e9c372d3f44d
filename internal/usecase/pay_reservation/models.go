package pay_reservation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на оплату одного бронирования.
// Способ оплаты и валюта необязательны, но если указаны, должны совпадать с бронированием
type Request struct {
	ReservationID int64
	PaymentMethod *string
	Currency      *string
}

// Response результат оплаты одного бронирования
type Response struct {
	Reservation         Reservation
	Payment             Payment
	OriginalAmount      decimal.Decimal // Без страховки, в валюте оплаты
	AmountWithInsurance decimal.Decimal // Со страховкой, до скидки
	FinalAmount         decimal.Decimal // Сохраненная сумма
	InsurancePercent    int
	DiscountApplied     bool
	DiscountPercent     int
	Currency            string
}

// Reservation бронирование после оплаты
type Reservation struct {
	ID                int64
	ClientID          int64
	ProductID         int64
	SlotID            int64
	SlotStartsAt      time.Time
	Status            string
	PaymentMethod     string
	Currency          string
	IncludesInsurance bool
}

// Payment созданный платеж
type Payment struct {
	ID              int64
	ReservationID   int64
	Amount          decimal.Decimal
	Currency        string
	PaymentMethod   string
	DiscountApplied bool
	DiscountPercent int
	CreatedAt       time.Time
}

// BatchRequest модель запроса на оплату нескольких бронирований одного клиента
type BatchRequest struct {
	ReservationIDs []int64
}

// Причины, по которым бронирование из пакета не оплачено
const (
	ReasonNotFound           = "NOT_FOUND"
	ReasonWrongState         = "WRONG_STATE"
	ReasonSlotPassed         = "SLOT_PASSED"
	ReasonCashDeadlineMissed = "CASH_DEADLINE_MISSED"
)

// ItemError бронирование из пакета, которое не удалось оплатить
type ItemError struct {
	ReservationID int64
	Reason        string
	Message       string
	Released      bool // Удержание освобождено
}

// BatchResponse результат пакетной оплаты
type BatchResponse struct {
	ClientID        int64
	Paid            []PaidItem
	Groups          []Group // По парам (валюта, способ оплаты)
	LocalTotal      decimal.Decimal
	ForeignTotal    decimal.Decimal
	Count           int
	InsuredCount    int
	DiscountApplied bool
	DiscountPercent int
	Errors          []ItemError
}

// PaidItem оплаченное бронирование пакета
type PaidItem struct {
	ReservationID       int64
	PaymentID           int64
	Currency            string
	PaymentMethod       string
	IncludesInsurance   bool
	OriginalAmount      decimal.Decimal
	AmountWithInsurance decimal.Decimal
	FinalAmount         decimal.Decimal
}

// Group итог пары (валюта, способ оплаты)
type Group struct {
	Currency       string
	PaymentMethod  string
	Subtotal       decimal.Decimal // До скидки
	Total          decimal.Decimal // Доля итоговой суммы после скидки
	ReservationIDs []int64
}
