package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	clientRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/client"
	paymentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-RentalService/internal/integrations/events"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	paymentRepo     PaymentRepository
	balanceRepo     BalanceRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	publisher       EventPublisher
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	paymentRepo PaymentRepository,
	balanceRepo BalanceRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		paymentRepo:     paymentRepo,
		balanceRepo:     balanceRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		publisher:       publisher,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute отменяет бронирование по его ID или по ID слота.
// Оплаченное бронирование возвращает всю сумму на баланс клиента в валюте платежа;
// смена статусов и пополнение баланса выполняются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if (req.ReservationID == nil) == (req.SlotID == nil) {
		uc.logger.Warn("CancelReservation: exactly one of reservationId and slotId is required")
		return nil, fmt.Errorf("%w: exactly one of reservationId and slotId is required", ErrInvalidInput)
	}

	var result *Response

	// 2. Отмена в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Находим бронирование
		res, err := uc.findReservation(txCtx, req)
		if err != nil {
			return err
		}

		if !res.CanBeCancelled() {
			uc.logger.Warn("CancelReservation: reservation id=%d already cancelled", res.ID)
			return ErrAlreadyCancelled
		}

		slot, err := uc.slotRepo.GetByID(txCtx, res.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CancelReservation: slot id=%d of reservation id=%d not found", res.SlotID, res.ID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CancelReservation: failed to get slot id=%d: %v", res.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.2. Отменить можно не позднее чем за 2 часа до слота
		if slot.StartsAt.Sub(uc.timeProvider.Now()) < domain.CancellationLeadTime {
			uc.logger.Warn("CancelReservation: reservation id=%d slot at %s is within the cancellation deadline",
				res.ID, slot.StartsAt.Format(domain.DateTimeFormat))
			return ErrCancellationDeadline
		}

		// 2.3. Статусы бронирования и слота
		if err := uc.reservationRepo.UpdateStatus(txCtx, res.ID, domain.ReservationCancelled); err != nil {
			uc.logger.Error("CancelReservation: failed to cancel reservation id=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}
		if err := uc.slotRepo.UpdateStatus(txCtx, slot.ID, domain.SlotAvailable); err != nil {
			uc.logger.Error("CancelReservation: failed to release slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
		}

		result = &Response{
			Reservation: Reservation{
				ID:             res.ID,
				ClientID:       res.ClientID,
				ProductID:      res.ProductID,
				Status:         string(domain.ReservationCancelled),
				PreviousStatus: string(res.Status),
			},
			Slot: Slot{
				ID:       slot.ID,
				StartsAt: slot.StartsAt,
				Status:   string(domain.SlotAvailable),
			},
		}

		// 2.4. Возврат полной суммы оплаченного бронирования
		balance, err := uc.refund(txCtx, res, result)
		if err != nil {
			return err
		}
		result.Balance = Balance{ClientID: res.ClientID, Local: balance.Local, Foreign: balance.Foreign}

		return nil
	})

	if err != nil {
		return nil, err
	}

	event := events.Event{
		Type:          events.ReservationCancelled,
		ReservationID: result.Reservation.ID,
		ClientID:      result.Reservation.ClientID,
		SlotID:        result.Slot.ID,
	}
	if result.Refund != nil {
		amount := result.Refund.Amount.StringFixed(domain.MoneyScale)
		event.Amount = &amount
		event.Currency = &result.Refund.Currency
	}
	uc.metrics.IncEvent(metrics.EventReservationCancelled, 1)
	uc.publisher.PublishWithGracefulDegradation(ctx, event)

	uc.logger.Info("CancelReservation: reservation id=%d cancelled, slot id=%d released, refunded=%t",
		result.Reservation.ID, result.Slot.ID, result.Refund != nil)

	return result, nil
}

// findReservation находит бронирование по ID или активное бронирование слота
func (uc *UseCase) findReservation(ctx context.Context, req *Request) (*domain.Reservation, error) {
	if req.ReservationID != nil {
		res, err := uc.reservationRepo.GetByID(ctx, *req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("CancelReservation: reservation id=%d not found", *req.ReservationID)
				return nil, ErrReservationNotFound
			}
			uc.logger.Error("CancelReservation: failed to get reservation id=%d: %v", *req.ReservationID, err)
			return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}
		return res, nil
	}

	if _, err := uc.slotRepo.GetByID(ctx, *req.SlotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("CancelReservation: slot id=%d not found", *req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CancelReservation: failed to get slot id=%d: %v", *req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	res, err := uc.reservationRepo.GetActiveBySlotID(ctx, *req.SlotID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: slot id=%d has no active reservation", *req.SlotID)
			return nil, ErrNoActiveReservation
		}
		uc.logger.Error("CancelReservation: failed to get reservation of slot id=%d: %v", *req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}
	return res, nil
}

// refund пополняет баланс на сумму платежа оплаченного бронирования и возвращает итоговый баланс
func (uc *UseCase) refund(ctx context.Context, res *domain.Reservation, result *Response) (*domain.Balance, error) {
	if res.Status != domain.ReservationPaid {
		balance, err := uc.balanceRepo.GetBalance(ctx, res.ClientID)
		if errors.Is(err, clientRepo.ErrBalanceNotFound) {
			return &domain.Balance{ClientID: res.ClientID, Local: decimal.Zero, Foreign: decimal.Zero}, nil
		}
		if err != nil {
			uc.logger.Error("CancelReservation: failed to get balance of client id=%d: %v", res.ClientID, err)
			return nil, fmt.Errorf("%w: failed to get balance: %v", ErrInternal, err)
		}
		return balance, nil
	}

	payment, err := uc.paymentRepo.GetByReservationID(ctx, res.ID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Error("CancelReservation: paid reservation id=%d has no payment", res.ID)
			return nil, ErrPaymentMissing
		}
		uc.logger.Error("CancelReservation: failed to get payment of reservation id=%d: %v", res.ID, err)
		return nil, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	balance, err := uc.balanceRepo.Credit(ctx, res.ClientID, payment.Currency, payment.Amount)
	if err != nil {
		uc.logger.Error("CancelReservation: failed to credit client id=%d: %v", res.ClientID, err)
		return nil, fmt.Errorf("%w: failed to credit balance: %v", ErrInternal, err)
	}

	result.Refund = &Refund{Amount: payment.Amount, Currency: string(payment.Currency)}
	uc.logger.Info("CancelReservation: refunded %s %s to client id=%d",
		payment.Amount.StringFixed(domain.MoneyScale), payment.Currency, res.ClientID)

	return balance, nil
}
