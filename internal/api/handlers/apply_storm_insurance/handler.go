package apply_storm_insurance

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	applyStormInsurance "github.com/m04kA/SMC-RentalService/internal/usecase/apply_storm_insurance"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgClientNotFound  = "клиент не найден"
)

type Handler struct {
	useCase ApplyStormInsuranceUseCase
	logger  Logger
}

func NewHandler(useCase ApplyStormInsuranceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/clients/{clientId}/storm-insurance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathInt64(r, "clientId")
	if err != nil {
		h.logger.Warn("PUT /clients/{id}/storm-insurance - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &applyStormInsurance.Request{ClientID: clientID})
	if err != nil {
		switch {
		case errors.Is(err, applyStormInsurance.ErrInvalidInput):
			handlers.RespondReason(w, http.StatusBadRequest, "INVALID_INPUT", msgInvalidClientID)

		case errors.Is(err, applyStormInsurance.ErrClientNotFound):
			h.logger.Warn("PUT /clients/{id}/storm-insurance - Client not found: client_id=%d", clientID)
			handlers.RespondReason(w, http.StatusNotFound, "CLIENT_NOT_FOUND", msgClientNotFound)

		default:
			h.logger.Error("PUT /clients/{id}/storm-insurance - Failed to apply storm insurance: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /clients/{id}/storm-insurance - Applied: client_id=%d, cancelled=%d",
		clientID, result.CancelledCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
