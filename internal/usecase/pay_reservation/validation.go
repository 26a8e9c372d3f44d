package pay_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationId must be positive", ErrInvalidInput)
	}
	if req.PaymentMethod != nil && !domain.PaymentMethod(*req.PaymentMethod).IsValid() {
		return fmt.Errorf("%w: invalid payment method %q", ErrInvalidInput, *req.PaymentMethod)
	}
	if req.Currency != nil && !domain.Currency(*req.Currency).IsValid() {
		return fmt.Errorf("%w: invalid currency %q", ErrInvalidInput, *req.Currency)
	}
	return nil
}

// validateBatchRequest проверяет, что пакет не пуст и без повторов
func validateBatchRequest(req *BatchRequest) error {
	if len(req.ReservationIDs) == 0 {
		return fmt.Errorf("%w: reservationIds is required", ErrInvalidInput)
	}

	seen := make(map[int64]bool, len(req.ReservationIDs))
	for _, id := range req.ReservationIDs {
		if id <= 0 {
			return fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
		}
		if seen[id] {
			return fmt.Errorf("%w: reservation id=%d repeated", ErrInvalidInput, id)
		}
		seen[id] = true
	}
	return nil
}

// validateMatches проверяет, что указанные способ оплаты и валюта совпадают с бронированием
func validateMatches(req *Request, res *domain.Reservation) error {
	if req.PaymentMethod != nil && domain.PaymentMethod(*req.PaymentMethod) != res.PaymentMethod {
		return fmt.Errorf("%w: reserved with %s", ErrPaymentMethodMismatch, res.PaymentMethod)
	}
	if req.Currency != nil && domain.Currency(*req.Currency) != res.Currency {
		return fmt.Errorf("%w: reserved in %s", ErrCurrencyMismatch, res.Currency)
	}
	return nil
}

// checkPayable проверяет, что бронирование можно оплатить сейчас.
// Для прошедшего слота и пропущенного срока оплаты наличными удержание нужно освободить (release=true)
func checkPayable(res *domain.Reservation, slot *domain.Slot, now time.Time) (reason string, release bool, err error) {
	if !res.CanBePaid() {
		return ReasonWrongState, false, fmt.Errorf("%w: current status %s", ErrWrongState, res.Status)
	}

	if slot.StartsAt.Before(now) {
		return ReasonSlotPassed, true, fmt.Errorf("%w: slot started at %s", ErrSlotPassed, slot.StartsAt.Format(domain.DateTimeFormat))
	}

	if res.PaymentMethod == domain.PaymentCash {
		deadline := slot.StartsAt.Add(-domain.CashPaymentLeadTime)
		if now.After(deadline) {
			return ReasonCashDeadlineMissed, true, fmt.Errorf("%w: deadline was %s", ErrCashDeadlineMissed, deadline.Format(domain.DateTimeFormat))
		}
	}

	return "", false, nil
}
