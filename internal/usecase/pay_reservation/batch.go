package pay_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RentalService/internal/integrations/events"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
)

// ExecuteBatch оплачивает несколько бронирований одного клиента.
// Бронирования, которые нельзя оплатить, пропускаются и попадают в Errors; удержания с прошедшим
// слотом или пропущенным сроком оплаты наличными освобождаются. Остальные оплачиваются в одной
// транзакции, итог со скидкой распределяется пропорционально
func (uc *UseCase) ExecuteBatch(ctx context.Context, req *BatchRequest) (*BatchResponse, error) {
	uc.logger.Info("PayReservationsBatch: reservations=%v", req.ReservationIDs)

	// 1. Валидация входных данных
	if err := validateBatchRequest(req); err != nil {
		uc.logger.Warn("PayReservationsBatch: validation failed: %v", err)
		return nil, err
	}

	var (
		result    *BatchResponse
		paid      []*domain.Reservation
		toRelease []int
	)

	// 2. Проверки, расчет и запись платежей в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result = &BatchResponse{Errors: make([]ItemError, 0)}
		paid = paid[:0]
		toRelease = toRelease[:0]
		now := uc.timeProvider.Now()

		// 2.1. Загружаем бронирования
		found := make([]*domain.Reservation, 0, len(req.ReservationIDs))
		clients := make(map[int64]bool)
		for _, id := range req.ReservationIDs {
			res, err := uc.reservationRepo.GetByID(txCtx, id)
			if err != nil {
				if errors.Is(err, reservationRepo.ErrReservationNotFound) {
					result.Errors = append(result.Errors, ItemError{
						ReservationID: id,
						Reason:        ReasonNotFound,
						Message:       ErrReservationNotFound.Error(),
					})
					continue
				}
				uc.logger.Error("PayReservationsBatch: failed to get reservation id=%d: %v", id, err)
				return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
			}
			found = append(found, res)
			clients[res.ClientID] = true
		}

		// 2.2. Все бронирования должны принадлежать одному клиенту
		if len(clients) > 1 {
			uc.logger.Warn("PayReservationsBatch: reservations of %d different clients", len(clients))
			return ErrMixedClients
		}

		// 2.3. Отбираем те, что можно оплатить
		for _, res := range found {
			slot, err := uc.slotRepo.GetByID(txCtx, res.SlotID)
			if err != nil {
				uc.logger.Error("PayReservationsBatch: failed to get slot id=%d: %v", res.SlotID, err)
				return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
			}

			reason, release, err := checkPayable(res, slot, now)
			if err != nil {
				uc.logger.Warn("PayReservationsBatch: reservation id=%d skipped: %v", res.ID, err)
				if release {
					toRelease = append(toRelease, len(result.Errors))
				}
				result.Errors = append(result.Errors, ItemError{
					ReservationID: res.ID,
					Reason:        reason,
					Message:       err.Error(),
				})
				continue
			}
			paid = append(paid, res)
		}

		if len(paid) == 0 {
			uc.logger.Warn("PayReservationsBatch: nothing to pay")
			return &NothingToPayError{Errors: result.Errors}
		}

		clientID := paid[0].ClientID
		result.ClientID = clientID

		// 2.4. Расчет: единое правило скидки по всем бронированиям клиента в ожидании оплаты
		pending, err := uc.reservationRepo.CountByClientAndStatus(txCtx, clientID, domain.ReservationPendingPayment)
		if err != nil {
			uc.logger.Error("PayReservationsBatch: failed to count pending reservations of client id=%d: %v", clientID, err)
			return fmt.Errorf("%w: failed to count pending reservations: %v", ErrInternal, err)
		}

		// Освобождаемые удержания не считаются
		pending -= len(toRelease)

		allocation, err := uc.price(txCtx, paid, pricing.DiscountEligible(pending))
		if err != nil {
			return err
		}

		result.DiscountApplied = allocation.DiscountApplied
		result.DiscountPercent = allocation.DiscountPercent
		result.LocalTotal = decimal.Zero
		result.ForeignTotal = decimal.Zero

		// 2.5. Платежи и перевод в PAID
		for i, res := range paid {
			item := allocation.Items[i]
			amount := pricing.RoundMoney(item.Final)

			payment, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
				ReservationID:   res.ID,
				Amount:          amount,
				Currency:        res.Currency,
				PaymentMethod:   res.PaymentMethod,
				DiscountApplied: allocation.DiscountApplied,
				DiscountPercent: allocation.DiscountPercent,
			})
			if err != nil {
				uc.logger.Error("PayReservationsBatch: failed to create payment for reservation id=%d: %v", res.ID, err)
				return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
			}

			if err := uc.reservationRepo.UpdateStatus(txCtx, res.ID, domain.ReservationPaid); err != nil {
				uc.logger.Error("PayReservationsBatch: failed to mark reservation id=%d paid: %v", res.ID, err)
				return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
			}

			result.Paid = append(result.Paid, PaidItem{
				ReservationID:       res.ID,
				PaymentID:           payment.ID,
				Currency:            string(res.Currency),
				PaymentMethod:       string(res.PaymentMethod),
				IncludesInsurance:   res.IncludesInsurance,
				OriginalAmount:      pricing.RoundMoney(item.Original),
				AmountWithInsurance: pricing.RoundMoney(item.WithInsurance),
				FinalAmount:         amount,
			})

			if res.Currency == domain.CurrencyForeign {
				result.ForeignTotal = result.ForeignTotal.Add(amount)
			} else {
				result.LocalTotal = result.LocalTotal.Add(amount)
			}
			if res.IncludesInsurance {
				result.InsuredCount++
			}
		}
		result.Count = len(result.Paid)

		for _, pair := range allocation.Pairs {
			result.Groups = append(result.Groups, Group{
				Currency:       string(pair.Pair.Currency),
				PaymentMethod:  string(pair.Pair.PaymentMethod),
				Subtotal:       pricing.RoundMoney(pair.Subtotal),
				Total:          pricing.RoundMoney(pair.Share),
				ReservationIDs: pair.ReservationIDs,
			})
		}

		return nil
	})

	// 3. Просроченные удержания освобождаются отдельными транзакциями.
	// Released выставляется только по факту освобождения (Errors общий с NothingToPayError)
	for _, idx := range toRelease {
		item := &result.Errors[idx]
		released, relErr := uc.holds.Release(ctx, item.ReservationID)
		if relErr != nil {
			uc.logger.Error("PayReservationsBatch: failed to release reservation id=%d: %v", item.ReservationID, relErr)
		}
		item.Released = relErr == nil && released
	}

	if err != nil {
		return nil, err
	}

	uc.metrics.IncEvent(metrics.EventReservationPaid, len(result.Paid))
	for i, item := range result.Paid {
		amount := item.FinalAmount.StringFixed(domain.MoneyScale)
		uc.publisher.PublishWithGracefulDegradation(ctx, events.Event{
			Type:          events.ReservationPaid,
			ReservationID: item.ReservationID,
			ClientID:      result.ClientID,
			SlotID:        paid[i].SlotID,
			Amount:        &amount,
			Currency:      &result.Paid[i].Currency,
		})
	}

	uc.logger.Info("PayReservationsBatch: client id=%d paid %d reservation(s), skipped %d, local=%s, foreign=%s",
		result.ClientID, result.Count, len(result.Errors),
		result.LocalTotal.StringFixed(domain.MoneyScale), result.ForeignTotal.StringFixed(domain.MoneyScale))

	return result, nil
}
