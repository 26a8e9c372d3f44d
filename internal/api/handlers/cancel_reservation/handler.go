package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	cancelReservation "github.com/m04kA/SMC-RentalService/internal/usecase/cancel_reservation"
)

const (
	msgInvalidID            = "некорректный ID бронирования или слота"
	msgReservationNotFound  = "бронирование не найдено"
	msgSlotNotFound         = "слот не найден"
	msgNoActiveReservation  = "у слота нет активного бронирования"
	msgAlreadyCancelled     = "бронирование уже отменено"
	msgCancellationDeadline = "отменить бронирование можно не позднее чем за 2 часа до слота"
)

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}/cancel
// и PUT /api/v1/slots/{slotId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, key, err := requestFromPath(r)
	if err != nil {
		h.logger.Warn("PUT %s - Invalid ID: %v", key, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrInvalidInput):
			h.logger.Warn("PUT %s - Invalid input: %v", key, err)
			handlers.RespondReason(w, http.StatusBadRequest, "INVALID_INPUT", msgInvalidID)

		case errors.Is(err, cancelReservation.ErrReservationNotFound):
			h.logger.Warn("PUT %s - Reservation not found: %v", key, err)
			handlers.RespondReason(w, http.StatusNotFound, "RESERVATION_NOT_FOUND", msgReservationNotFound)

		case errors.Is(err, cancelReservation.ErrSlotNotFound):
			h.logger.Warn("PUT %s - Slot not found: %v", key, err)
			handlers.RespondReason(w, http.StatusNotFound, "SLOT_NOT_FOUND", msgSlotNotFound)

		case errors.Is(err, cancelReservation.ErrNoActiveReservation):
			h.logger.Warn("PUT %s - No active reservation: %v", key, err)
			handlers.RespondReason(w, http.StatusNotFound, "NO_ACTIVE_RESERVATION", msgNoActiveReservation)

		case errors.Is(err, cancelReservation.ErrAlreadyCancelled):
			h.logger.Warn("PUT %s - Already cancelled: %v", key, err)
			handlers.RespondReason(w, http.StatusConflict, "ALREADY_CANCELLED", msgAlreadyCancelled)

		case errors.Is(err, cancelReservation.ErrCancellationDeadline):
			h.logger.Warn("PUT %s - Cancellation deadline passed: %v", key, err)
			handlers.RespondReason(w, http.StatusConflict, "CANCELLATION_DEADLINE", msgCancellationDeadline)

		default:
			h.logger.Error("PUT %s - Failed to cancel reservation: error=%v", key, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT %s - Reservation cancelled: reservation_id=%d, slot_id=%d, refunded=%t",
		key, result.Reservation.ID, result.Slot.ID, result.Refund != nil)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// requestFromPath определяет ключ отмены по параметрам маршрута
func requestFromPath(r *http.Request) (*cancelReservation.Request, string, error) {
	if _, ok := mux.Vars(r)["slotId"]; ok {
		slotID, err := handlers.PathInt64(r, "slotId")
		return &cancelReservation.Request{SlotID: &slotID}, "/slots/{id}/cancel", err
	}

	reservationID, err := handlers.PathInt64(r, "reservationId")
	return &cancelReservation.Request{ReservationID: &reservationID}, "/reservations/{id}/cancel", err
}
