package apply_storm_insurance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/events"
)

// ClientRepository интерфейс репозитория клиентов и балансов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetBalance(ctx context.Context, clientID int64) (*domain.Balance, error)
	Credit(ctx context.Context, clientID int64, currency domain.Currency, amount decimal.Decimal) (*domain.Balance, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.ReservationWithSlot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.Payment, error)
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
