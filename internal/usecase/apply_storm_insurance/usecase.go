package apply_storm_insurance

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	clientRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/client"
	paymentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-RentalService/internal/integrations/events"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
)

// UseCase use case для штормовой страховки
type UseCase struct {
	clientRepo      ClientRepository
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	paymentRepo     PaymentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	publisher       EventPublisher
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	clientRepo ClientRepository,
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		clientRepo:      clientRepo,
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		paymentRepo:     paymentRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		publisher:       publisher,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute отменяет сегодняшние оплаченные бронирования клиента со страховкой и возвращает
// половину оплаченной суммы на баланс. Слоты закрываются (CANCELLED) и повторно не выдаются.
// Отсутствие подходящих бронирований не ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyStormInsurance: client=%d", req.ClientID)

	// 1. Валидация входных данных
	if req.ClientID <= 0 {
		uc.logger.Warn("ApplyStormInsurance: invalid client id=%d", req.ClientID)
		return nil, fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	from, to := todayWindow(now)

	result := &Response{
		ClientID:   req.ClientID,
		WindowFrom: from,
		WindowTo:   to,
		AppliedAt:  now,
	}

	// 2. Отмены и возвраты в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result.CancelledCount = 0
		result.LocalRefund = decimal.Zero
		result.ForeignRefund = decimal.Zero
		result.Items = make([]Item, 0)

		// 2.1. Клиент
		if _, err := uc.clientRepo.GetByID(txCtx, req.ClientID); err != nil {
			if errors.Is(err, clientRepo.ErrClientNotFound) {
				uc.logger.Warn("ApplyStormInsurance: client id=%d not found", req.ClientID)
				return ErrClientNotFound
			}
			uc.logger.Error("ApplyStormInsurance: failed to get client id=%d: %v", req.ClientID, err)
			return fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
		}

		// 2.2. Оплаченные бронирования на сегодня
		reservations, err := uc.reservationRepo.List(txCtx, domain.ReservationFilter{
			ClientID: &req.ClientID,
			Statuses: []domain.ReservationStatus{domain.ReservationPaid},
			SlotFrom: &from,
			SlotTo:   &to,
		})
		if err != nil {
			uc.logger.Error("ApplyStormInsurance: failed to list reservations of client id=%d: %v", req.ClientID, err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}

		// 2.3. Только со страховкой и с записанным платежом
		for _, res := range reservations {
			if !res.IncludesInsurance {
				continue
			}

			payment, err := uc.paymentRepo.GetByReservationID(txCtx, res.ID)
			if err != nil {
				if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
					uc.logger.Warn("ApplyStormInsurance: reservation id=%d has no payment, skipped", res.ID)
					continue
				}
				uc.logger.Error("ApplyStormInsurance: failed to get payment of reservation id=%d: %v", res.ID, err)
				return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
			}

			// Возврат зачисляется в валюте фактического платежа
			refund := payment.Amount.Mul(domain.StormRefundRatio)
			if _, err := uc.clientRepo.Credit(txCtx, req.ClientID, payment.Currency, refund); err != nil {
				uc.logger.Error("ApplyStormInsurance: failed to credit client id=%d: %v", req.ClientID, err)
				return fmt.Errorf("%w: failed to credit balance: %v", ErrInternal, err)
			}

			if err := uc.reservationRepo.UpdateStatus(txCtx, res.ID, domain.ReservationCancelled); err != nil {
				uc.logger.Error("ApplyStormInsurance: failed to cancel reservation id=%d: %v", res.ID, err)
				return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
			}
			if err := uc.slotRepo.UpdateStatus(txCtx, res.SlotID, domain.SlotCancelled); err != nil {
				uc.logger.Error("ApplyStormInsurance: failed to close slot id=%d: %v", res.SlotID, err)
				return fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
			}

			if payment.Currency == domain.CurrencyForeign {
				result.ForeignRefund = result.ForeignRefund.Add(refund)
			} else {
				result.LocalRefund = result.LocalRefund.Add(refund)
			}
			result.CancelledCount++
			result.Items = append(result.Items, Item{
				ReservationID: res.ID,
				SlotID:        res.SlotID,
				SlotStartsAt:  res.SlotStartsAt,
				PaidAmount:    payment.Amount,
				Refund:        refund,
				Currency:      string(payment.Currency),
			})
		}

		// 2.4. Итоговый баланс
		balance, err := uc.clientRepo.GetBalance(txCtx, req.ClientID)
		switch {
		case errors.Is(err, clientRepo.ErrBalanceNotFound):
			result.Balance = Balance{Local: decimal.Zero, Foreign: decimal.Zero}
		case err != nil:
			uc.logger.Error("ApplyStormInsurance: failed to get balance of client id=%d: %v", req.ClientID, err)
			return fmt.Errorf("%w: failed to get balance: %v", ErrInternal, err)
		default:
			result.Balance = Balance{Local: balance.Local, Foreign: balance.Foreign}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.IncEvent(metrics.EventStormRefund, result.CancelledCount)
	for _, item := range result.Items {
		refund := item.Refund.String()
		uc.publisher.PublishWithGracefulDegradation(ctx, events.Event{
			Type:          events.ReservationStormCancelled,
			ReservationID: item.ReservationID,
			ClientID:      req.ClientID,
			SlotID:        item.SlotID,
			Amount:        &refund,
			Currency:      &item.Currency,
		})
	}

	uc.logger.Info("ApplyStormInsurance: client id=%d, cancelled=%d, local refund=%s, foreign refund=%s",
		req.ClientID, result.CancelledCount, result.LocalRefund.String(), result.ForeignRefund.String())

	return result, nil
}
