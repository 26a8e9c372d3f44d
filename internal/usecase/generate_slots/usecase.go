package generate_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// UseCase use case генерации сетки слотов
type UseCase struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute создает подряд идущие получасовые слоты со статусом AVAILABLE.
// Уже существующие слоты не изменяются, поэтому повторный вызов безопасен
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	count := domain.DefaultSlotSeedCount
	if req.Count != nil {
		count = *req.Count
	}
	if count < 1 || count > domain.MaxSlotSeedCount {
		uc.logger.Warn("GenerateSlots: invalid count=%d", count)
		return nil, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidInput, domain.MaxSlotSeedCount)
	}

	// 2. Сетка времени
	now := uc.timeProvider.Now()
	times := generateTimeSlots(gridStart(now), count)

	uc.logger.Info("GenerateSlots: count=%d, from=%s", count, times[0].Format(domain.DateTimeFormat))

	result := &Response{
		From: times[0],
		To:   times[len(times)-1].Add(domain.SlotDuration),
	}

	// 3. Создание в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		result.Slots = make([]Slot, 0, count)
		result.CreatedCount = 0
		result.SkippedCount = 0

		for _, startsAt := range times {
			slot, created, err := uc.slotRepo.CreateIfAbsent(txCtx, startsAt)
			if err != nil {
				uc.logger.Error("GenerateSlots: failed to create slot at %s: %v", startsAt.Format(domain.DateTimeFormat), err)
				return fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
			}

			if !created {
				result.SkippedCount++
				continue
			}

			result.CreatedCount++
			result.Slots = append(result.Slots, Slot{
				ID:       slot.ID,
				StartsAt: slot.StartsAt,
				Status:   string(slot.Status),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GenerateSlots: created=%d, skipped=%d", result.CreatedCount, result.SkippedCount)

	return result, nil
}
