package pay_batch

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	payReservation "github.com/m04kA/SMC-RentalService/internal/usecase/pay_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "список бронирований пуст или содержит некорректные ID"
	msgMixedClients       = "все бронирования пакета должны принадлежать одному клиенту"
	msgNothingToPay       = "ни одно бронирование из пакета нельзя оплатить"
	msgRateNotConfigured  = "курс иностранной валюты не настроен"
)

type Handler struct {
	useCase PayBatchUseCase
	logger  Logger
}

func NewHandler(useCase PayBatchUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/batch
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PayBatchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/batch - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.ExecuteBatch(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var nothing *payReservation.NothingToPayError

		switch {
		case errors.As(err, &nothing):
			h.logger.Warn("POST /payments/batch - Nothing to pay: ids=%v, rejected=%d", req.ReservationIDs, len(nothing.Errors))
			handlers.RespondJSON(w, http.StatusBadRequest, &NothingToPayResponse{
				Code:    http.StatusBadRequest,
				Reason:  "NOTHING_TO_PAY",
				Message: msgNothingToPay,
				Errors:  FromUseCaseItemErrors(nothing.Errors),
			})

		case errors.Is(err, payReservation.ErrMixedClients):
			h.logger.Warn("POST /payments/batch - Mixed clients: ids=%v", req.ReservationIDs)
			handlers.RespondReason(w, http.StatusBadRequest, "MIXED_CLIENTS", msgMixedClients)

		case errors.Is(err, payReservation.ErrInvalidInput):
			h.logger.Warn("POST /payments/batch - Invalid input: %v", err)
			handlers.RespondReason(w, http.StatusBadRequest, "INVALID_INPUT", msgInvalidInput)

		case errors.Is(err, payReservation.ErrRateNotConfigured):
			h.logger.Error("POST /payments/batch - Exchange rate is not configured: ids=%v", req.ReservationIDs)
			handlers.RespondReason(w, http.StatusInternalServerError, "RATE_NOT_CONFIGURED", msgRateNotConfigured)

		default:
			h.logger.Error("POST /payments/batch - Failed to pay batch: ids=%v, error=%v", req.ReservationIDs, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/batch - Batch paid: client_id=%d, paid=%d, rejected=%d",
		result.ClientID, result.Count, len(result.Errors))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
