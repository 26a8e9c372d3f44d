package get_amount_due

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.ReservationWithSlot, error)
}

// ProductRepository интерфейс репозитория каталога
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// RateLoader загружает курсы валют
type RateLoader interface {
	Load(ctx context.Context, needForeign bool) (pricing.Rates, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
