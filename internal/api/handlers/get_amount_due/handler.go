package get_amount_due

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	getAmountDue "github.com/m04kA/SMC-RentalService/internal/usecase/get_amount_due"
)

const (
	msgInvalidClientID   = "некорректный ID клиента"
	msgClientNotFound    = "клиент не найден"
	msgRateNotConfigured = "курс иностранной валюты не настроен"
)

type Handler struct {
	useCase GetAmountDueUseCase
	logger  Logger
}

func NewHandler(useCase GetAmountDueUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/amount-due
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathInt64(r, "clientId")
	if err != nil {
		h.logger.Warn("GET /clients/{id}/amount-due - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAmountDue.Request{ClientID: clientID})
	if err != nil {
		switch {
		case errors.Is(err, getAmountDue.ErrInvalidInput):
			handlers.RespondReason(w, http.StatusBadRequest, "INVALID_INPUT", msgInvalidClientID)

		case errors.Is(err, getAmountDue.ErrClientNotFound):
			h.logger.Warn("GET /clients/{id}/amount-due - Client not found: client_id=%d", clientID)
			handlers.RespondReason(w, http.StatusNotFound, "CLIENT_NOT_FOUND", msgClientNotFound)

		case errors.Is(err, getAmountDue.ErrRateNotConfigured):
			h.logger.Error("GET /clients/{id}/amount-due - Exchange rate is not configured: client_id=%d", clientID)
			handlers.RespondReason(w, http.StatusInternalServerError, "RATE_NOT_CONFIGURED", msgRateNotConfigured)

		default:
			h.logger.Error("GET /clients/{id}/amount-due - Failed to calculate amount due: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
