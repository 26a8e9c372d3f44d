package cancel_reservation

import "errors"

var (
	// ErrInvalidInput возвращается, когда не указан ровно один из ключей (бронирование или слот)
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("cancel_reservation: slot not found")

	// ErrNoActiveReservation возвращается, когда у слота нет активного бронирования
	ErrNoActiveReservation = errors.New("cancel_reservation: slot has no active reservation")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("cancel_reservation: reservation is already cancelled")

	// ErrCancellationDeadline возвращается, когда до слота меньше 2 часов
	ErrCancellationDeadline = errors.New("cancel_reservation: cancellation must happen at least 2 hours before the slot")

	// ErrPaymentMissing возвращается, когда у оплаченного бронирования нет платежа
	ErrPaymentMissing = errors.New("cancel_reservation: paid reservation has no payment record")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
