package release_holds

import (
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

type Handler struct {
	useCase ReleaseHoldsUseCase
	logger  Logger
}

func NewHandler(useCase ReleaseHoldsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds/release
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /holds/release - Failed to release holds: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /holds/release - Released=%d, failed=%d", result.ReleasedCount, result.FailedCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
