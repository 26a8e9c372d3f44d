package pay_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	payReservation "github.com/m04kA/SMC-RentalService/internal/usecase/pay_reservation"
)

const (
	msgInvalidReservationID  = "некорректный ID бронирования"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgNotFound              = "бронирование не найдено"
	msgWrongState            = "бронирование не ожидает оплаты"
	msgPaymentMethodMismatch = "способ оплаты не совпадает с указанным при бронировании"
	msgCurrencyMismatch      = "валюта не совпадает с указанной при бронировании"
	msgSlotPassed            = "время слота прошло, бронирование освобождено"
	msgCashDeadlineMissed    = "наличные нужно оплатить не позднее чем за 2 часа до слота, бронирование освобождено"
	msgRateNotConfigured     = "курс иностранной валюты не настроен"
)

type Handler struct {
	useCase PayReservationUseCase
	logger  Logger
}

func NewHandler(useCase PayReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/pay
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathInt64(r, "reservationId")
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/pay - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req PayReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /reservations/{id}/pay - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reservationID))
	if err != nil {
		switch {
		case errors.Is(err, payReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/pay - Invalid input: reservation_id=%d, %v", reservationID, err)
			handlers.RespondReason(w, http.StatusBadRequest, "INVALID_INPUT", msgInvalidRequestBody)

		case errors.Is(err, payReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/pay - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondReason(w, http.StatusNotFound, "RESERVATION_NOT_FOUND", msgNotFound)

		case errors.Is(err, payReservation.ErrWrongState):
			h.logger.Warn("POST /reservations/{id}/pay - Wrong state: reservation_id=%d", reservationID)
			handlers.RespondReason(w, http.StatusConflict, "WRONG_STATE", msgWrongState)

		case errors.Is(err, payReservation.ErrPaymentMethodMismatch):
			h.logger.Warn("POST /reservations/{id}/pay - Payment method mismatch: reservation_id=%d", reservationID)
			handlers.RespondReason(w, http.StatusConflict, "PAYMENT_METHOD_MISMATCH", msgPaymentMethodMismatch)

		case errors.Is(err, payReservation.ErrCurrencyMismatch):
			h.logger.Warn("POST /reservations/{id}/pay - Currency mismatch: reservation_id=%d", reservationID)
			handlers.RespondReason(w, http.StatusConflict, "CURRENCY_MISMATCH", msgCurrencyMismatch)

		case errors.Is(err, payReservation.ErrSlotPassed):
			h.logger.Warn("POST /reservations/{id}/pay - Slot passed, hold released: reservation_id=%d", reservationID)
			handlers.RespondReason(w, http.StatusConflict, "SLOT_PASSED", msgSlotPassed)

		case errors.Is(err, payReservation.ErrCashDeadlineMissed):
			h.logger.Warn("POST /reservations/{id}/pay - Cash deadline missed, hold released: reservation_id=%d", reservationID)
			handlers.RespondReason(w, http.StatusConflict, "CASH_DEADLINE_MISSED", msgCashDeadlineMissed)

		case errors.Is(err, payReservation.ErrRateNotConfigured):
			h.logger.Error("POST /reservations/{id}/pay - Exchange rate is not configured: reservation_id=%d", reservationID)
			handlers.RespondReason(w, http.StatusInternalServerError, "RATE_NOT_CONFIGURED", msgRateNotConfigured)

		default:
			h.logger.Error("POST /reservations/{id}/pay - Failed to pay reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/pay - Reservation paid: reservation_id=%d, amount=%s %s",
		reservationID, result.FinalAmount, result.Currency)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
