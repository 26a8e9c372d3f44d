package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// CreateIfAbsent создает слот, если слота с таким временем еще нет (created=false для существующего)
	CreateIfAbsent(ctx context.Context, startsAt time.Time) (slot *domain.Slot, created bool, err error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
