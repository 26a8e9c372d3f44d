package domain

import "time"

// ReservationStatus состояние бронирования
type ReservationStatus string

const (
	ReservationPendingPayment ReservationStatus = "PENDING_PAYMENT"
	ReservationPaid           ReservationStatus = "PAID"
	ReservationCancelled      ReservationStatus = "CANCELLED"
)

func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationPendingPayment, ReservationPaid, ReservationCancelled:
		return true
	}
	return false
}

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentCash || m == PaymentTransfer
}

// Supports сообщает, можно ли платить этим способом в указанной валюте.
// Перевод возможен только в локальной валюте
func (m PaymentMethod) Supports(c Currency) bool {
	return !(m == PaymentTransfer && c == CurrencyForeign)
}

// Currency валюта оплаты
type Currency string

const (
	CurrencyLocal   Currency = "LOCAL"
	CurrencyForeign Currency = "FOREIGN"
)

func (c Currency) IsValid() bool {
	return c == CurrencyLocal || c == CurrencyForeign
}

// Reservation бронирование товара клиентом на слот
type Reservation struct {
	ID                int64
	ClientID          int64
	ProductID         int64
	SlotID            int64
	PartySize         int
	PaymentMethod     PaymentMethod
	Currency          Currency
	IncludesInsurance bool
	Status            ReservationStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsActive возвращает true, если бронирование удерживает слот
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationPendingPayment || r.Status == ReservationPaid
}

func (r *Reservation) CanBePaid() bool {
	return r.Status == ReservationPendingPayment
}

func (r *Reservation) CanBeCancelled() bool {
	return r.Status != ReservationCancelled
}

// PairKey ключ группировки по (валюта, способ оплаты)
type PairKey struct {
	Currency      Currency
	PaymentMethod PaymentMethod
}

func (r *Reservation) Pair() PairKey {
	return PairKey{Currency: r.Currency, PaymentMethod: r.PaymentMethod}
}

// ReservationFilter фильтр выборки бронирований
type ReservationFilter struct {
	ClientID      *int64
	SlotID        *int64
	Statuses      []ReservationStatus // Пусто = любой статус
	PaymentMethod *PaymentMethod
	SlotFrom      *time.Time // Время слота, включительно
	SlotTo        *time.Time // Время слота, включительно
}

// ReservationWithSlot бронирование вместе с его слотом
type ReservationWithSlot struct {
	Reservation
	SlotStartsAt time.Time
	SlotStatus   SlotStatus
}
