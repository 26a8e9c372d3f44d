// Package holds освобождает неоплаченные удержания слотов.
// Каждое освобождение выполняется в собственной транзакции: сбой на одном бронировании
// не откатывает уже освобожденные
package holds

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RentalService/internal/integrations/events"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
)

// Service освобождение удержаний
type Service struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		logger:          logger,
	}
}

// Release отменяет бронирование в ожидании оплаты и возвращает его слот в AVAILABLE.
// Возвращает false, если бронирование уже не в ожидании оплаты (повторный вызов ничего не меняет)
func (s *Service) Release(ctx context.Context, reservationID int64) (bool, error) {
	var released *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := s.reservationRepo.GetByID(txCtx, reservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return nil
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if res.Status != domain.ReservationPendingPayment {
			return nil
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, res.ID, domain.ReservationCancelled); err != nil {
			return fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
		}
		if err := s.slotRepo.UpdateStatus(txCtx, res.SlotID, domain.SlotAvailable); err != nil {
			return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
		}

		released = res
		return nil
	})

	if err != nil {
		s.logger.Error("ReleaseHold: reservation id=%d: %v", reservationID, err)
		return false, err
	}

	if released == nil {
		return false, nil
	}

	s.metrics.IncEvent(metrics.EventHoldReleased, 1)
	s.publisher.PublishWithGracefulDegradation(ctx, events.Event{
		Type:          events.ReservationReleased,
		ReservationID: released.ID,
		ClientID:      released.ClientID,
		SlotID:        released.SlotID,
	})
	s.logger.Info("ReleaseHold: reservation id=%d cancelled, slot id=%d released", released.ID, released.SlotID)

	return true, nil
}
