package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модель запроса на создание бронирования (1-3 слота)
type Request struct {
	ClientID          int64
	ProductID         int64
	SlotIDs           []int64
	PartySize         int
	PaymentMethod     string
	Currency          string
	IncludesInsurance bool
}

// Response созданные бронирования, по одному на слот в порядке запроса
type Response struct {
	Reservations []Reservation
}

// Reservation созданное бронирование
type Reservation struct {
	ID                int64
	ClientID          int64
	ProductID         int64
	SlotID            int64
	SlotStartsAt      time.Time
	PartySize         int
	PaymentMethod     string
	Currency          string
	IncludesInsurance bool
	Status            string
	Devices           []domain.SafetyDevice // Выданное снаряжение
	CreatedAt         time.Time
}
