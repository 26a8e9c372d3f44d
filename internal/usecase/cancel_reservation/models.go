package cancel_reservation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request отмена по ID бронирования либо по ID слота (ровно одно из двух)
type Request struct {
	ReservationID *int64
	SlotID        *int64
}

// Response результат отмены
type Response struct {
	Reservation Reservation
	Slot        Slot
	Refund      *Refund // nil, если бронирование не было оплачено
	Balance     Balance
}

// Reservation бронирование после отмены
type Reservation struct {
	ID             int64
	ClientID       int64
	ProductID      int64
	Status         string
	PreviousStatus string
}

// Slot слот после отмены
type Slot struct {
	ID       int64
	StartsAt time.Time
	Status   string
}

// Refund возврат на баланс клиента
type Refund struct {
	Amount   decimal.Decimal
	Currency string
}

// Balance баланс клиента после отмены
type Balance struct {
	ClientID int64
	Local    decimal.Decimal
	Foreign  decimal.Decimal
}
