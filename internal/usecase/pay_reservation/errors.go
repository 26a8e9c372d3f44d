package pay_reservation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pay_reservation: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("pay_reservation: reservation not found")

	// ErrWrongState возвращается, когда бронирование не ожидает оплаты
	ErrWrongState = errors.New("pay_reservation: reservation is not pending payment")

	// ErrPaymentMethodMismatch возвращается, когда способ оплаты не совпадает с указанным при бронировании
	ErrPaymentMethodMismatch = errors.New("pay_reservation: payment method does not match reservation")

	// ErrCurrencyMismatch возвращается, когда валюта не совпадает с указанной при бронировании
	ErrCurrencyMismatch = errors.New("pay_reservation: currency does not match reservation")

	// ErrSlotPassed возвращается, когда слот уже начался (удержание освобождается)
	ErrSlotPassed = errors.New("pay_reservation: slot time has passed")

	// ErrCashDeadlineMissed возвращается, когда наличные не оплачены за 2 часа до слота (удержание освобождается)
	ErrCashDeadlineMissed = errors.New("pay_reservation: cash payment deadline missed")

	// ErrMixedClients возвращается, когда в пакете бронирования разных клиентов
	ErrMixedClients = errors.New("pay_reservation: reservations belong to different clients")

	// ErrNothingToPay возвращается, когда в пакете нет ни одного бронирования, которое можно оплатить
	ErrNothingToPay = errors.New("pay_reservation: nothing to pay")

	// ErrRateNotConfigured возвращается, когда для иностранной валюты нет курса
	ErrRateNotConfigured = errors.New("pay_reservation: exchange rate is not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("pay_reservation: internal error")
)

// NothingToPayError пакет, в котором ни одно бронирование нельзя оплатить, с причинами по каждому
type NothingToPayError struct {
	Errors []ItemError
}

func (e *NothingToPayError) Error() string {
	return fmt.Sprintf("%s: %d reservation(s) rejected", ErrNothingToPay, len(e.Errors))
}

func (e *NothingToPayError) Unwrap() error {
	return ErrNothingToPay
}
