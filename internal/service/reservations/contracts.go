package reservations

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.ReservationWithSlot, error)
	GetDevices(ctx context.Context, reservationID int64) ([]domain.SafetyDevice, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// ProductRepository интерфейс репозитория каталога
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.Payment, error)
}

// ClientRepository интерфейс репозитория клиентов и балансов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetBalance(ctx context.Context, clientID int64) (*domain.Balance, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
