package list_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/catalog"
	"github.com/m04kA/SMC-RentalService/internal/service/catalog/models"
)

const (
	msgInvalidDate = "некорректная дата, ожидается формат YYYY-MM-DD"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := handlers.QueryString(r, "date")

	result, err := h.service.ListAvailableSlots(r.Context(), &models.ListSlotsRequest{Date: date})
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("GET /slots - Invalid date: %v", err)
			handlers.RespondReason(w, http.StatusBadRequest, "INVALID_DATE", msgInvalidDate)
			return
		}

		h.logger.Error("GET /slots - Failed to list slots: date=%v, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots - Slots retrieved: count=%d", len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
