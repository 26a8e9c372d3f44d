package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	generateSlots "github.com/m04kA/SMC-RentalService/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCount       = "количество слотов должно быть от 1 до 96"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		if errors.Is(err, generateSlots.ErrInvalidInput) {
			h.logger.Warn("POST /slots/generate - Invalid count: %v", err)
			handlers.RespondReason(w, http.StatusBadRequest, "INVALID_COUNT", msgInvalidCount)
			return
		}

		h.logger.Error("POST /slots/generate - Failed to generate slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /slots/generate - Created=%d, skipped=%d", result.CreatedCount, result.SkippedCount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
