package get_client_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgInvalidStatus   = "некорректный статус, ожидается PENDING_PAYMENT, PAID или CANCELLED"
	msgClientNotFound  = "клиент не найден"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/reservations?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathInt64(r, "clientId")
	if err != nil {
		h.logger.Warn("GET /clients/{id}/reservations - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	serviceReq := &models.GetClientReservationsRequest{
		ClientID: clientID,
		Status:   handlers.QueryString(r, "status"),
	}

	result, err := h.service.GetClientReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /clients/{id}/reservations - Invalid status: client_id=%d, %v", clientID, err)
			handlers.RespondReason(w, http.StatusBadRequest, "INVALID_STATUS", msgInvalidStatus)

		case errors.Is(err, reservations.ErrClientNotFound):
			h.logger.Warn("GET /clients/{id}/reservations - Client not found: client_id=%d", clientID)
			handlers.RespondReason(w, http.StatusNotFound, "CLIENT_NOT_FOUND", msgClientNotFound)

		default:
			h.logger.Error("GET /clients/{id}/reservations - Failed to get reservations: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id}/reservations - Reservations retrieved: client_id=%d, count=%d",
		clientID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
