package release_unpaid_holds

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// UseCase use case освобождения неоплаченных наличных удержаний
type UseCase struct {
	reservationRepo ReservationRepository
	holds           HoldReleaser
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	holds HoldReleaser,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		holds:           holds,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute отменяет наличные бронирования в ожидании оплаты, у которых истек срок оплаты
// (за 2 часа до слота), и возвращает их слоты в AVAILABLE.
// Каждое бронирование освобождается в своей транзакции, поэтому прерванный проход
// можно безопасно запустить повторно
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	uc.logger.Info("ReleaseUnpaidHolds: started at %s", now.Format(domain.DateTimeFormat))

	// 1. Кандидаты: наличные в ожидании оплаты
	cash := domain.PaymentCash
	candidates, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		Statuses:      []domain.ReservationStatus{domain.ReservationPendingPayment},
		PaymentMethod: &cash,
	})
	if err != nil {
		uc.logger.Error("ReleaseUnpaidHolds: failed to list pending cash reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	result := &Response{
		Released: make([]Item, 0),
		RanAt:    now,
	}

	// 2. Освобождение просроченных
	for _, res := range candidates {
		deadline := res.SlotStartsAt.Add(-domain.CashPaymentLeadTime)
		if !now.After(deadline) {
			continue
		}

		released, err := uc.holds.Release(ctx, res.ID)
		if err != nil {
			uc.logger.Warn("ReleaseUnpaidHolds: reservation id=%d not released: %v", res.ID, err)
			result.FailedCount++
			continue
		}
		if !released {
			continue
		}

		result.ReleasedCount++
		result.Released = append(result.Released, Item{
			ReservationID: res.ID,
			ClientID:      res.ClientID,
			SlotID:        res.SlotID,
			SlotStartsAt:  res.SlotStartsAt,
		})
	}

	uc.logger.Info("ReleaseUnpaidHolds: checked=%d, released=%d, failed=%d",
		len(candidates), result.ReleasedCount, result.FailedCount)

	return result, nil
}
