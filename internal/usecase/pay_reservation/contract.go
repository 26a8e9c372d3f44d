package pay_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/events"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	CountByClientAndStatus(ctx context.Context, clientID int64, status domain.ReservationStatus) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
}

// RateLoader загружает курсы валют для расчета
type RateLoader interface {
	Load(ctx context.Context, needForeign bool) (pricing.Rates, error)
}

// HoldReleaser освобождает просроченное удержание в отдельной транзакции
type HoldReleaser interface {
	Release(ctx context.Context, reservationID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// EventPublisher публикует события после фиксации транзакции
type EventPublisher interface {
	PublishWithGracefulDegradation(ctx context.Context, event events.Event)
}

// Metrics счетчики бизнес-событий
type Metrics interface {
	IncEvent(event string, n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
