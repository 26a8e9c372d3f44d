package create_reservation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/equipment"
	createReservation "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidInput          = "не заполнены обязательные поля бронирования"
	msgTooManySlots          = "за один запрос можно забронировать не более 3 слотов"
	msgInvalidPaymentMethod  = "некорректный способ оплаты, ожидается CASH или TRANSFER"
	msgInvalidCurrency       = "некорректная валюта, ожидается LOCAL или FOREIGN"
	msgTransferForeign       = "оплата переводом возможна только в локальной валюте"
	msgClientNotFound        = "клиент не найден"
	msgProductNotFound       = "товар не найден"
	msgSlotNotFound          = "слот не найден"
	msgSlotNotAvailable      = "выбранный слот недоступен"
	msgCapacityExceeded      = "количество человек превышает вместимость товара"
	msgSlotInPast            = "слот уже прошел"
	msgSlotTooFar            = "бронировать можно не более чем на 48 часов вперед"
	msgCashLeadTime          = "при оплате наличными бронировать нужно не позднее чем за 2 часа до слота"
	msgDuplicateBooking      = "у клиента уже есть бронирование на этот слот"
	msgConsecutiveLimit      = "нельзя бронировать больше 3 слотов подряд"
	msgInsufficientEquipment = "недостаточно защитного снаряжения"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		h.respondError(w, &req, err)
		return
	}

	h.logger.Info("POST /reservations - Reservations created: client_id=%d, count=%d",
		req.ClientID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, req *CreateReservationRequest, err error) {
	var shortage *equipment.ShortageError

	switch {
	// Некорректный запрос
	case errors.Is(err, createReservation.ErrTooManySlots):
		handlers.RespondReason(w, http.StatusBadRequest, "TOO_MANY_SLOTS", msgTooManySlots)
	case errors.Is(err, createReservation.ErrInvalidPaymentMethod):
		handlers.RespondReason(w, http.StatusBadRequest, "INVALID_PAYMENT_METHOD", msgInvalidPaymentMethod)
	case errors.Is(err, createReservation.ErrInvalidCurrency):
		handlers.RespondReason(w, http.StatusBadRequest, "INVALID_CURRENCY", msgInvalidCurrency)
	case errors.Is(err, createReservation.ErrInvalidInput):
		handlers.RespondReason(w, http.StatusBadRequest, "INVALID_INPUT", msgInvalidInput)

	// Не найдено
	case errors.Is(err, createReservation.ErrClientNotFound):
		handlers.RespondReason(w, http.StatusNotFound, "CLIENT_NOT_FOUND", msgClientNotFound)
	case errors.Is(err, createReservation.ErrProductNotFound):
		handlers.RespondReason(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", msgProductNotFound)
	case errors.Is(err, createReservation.ErrSlotNotFound):
		handlers.RespondReason(w, http.StatusNotFound, "SLOT_NOT_FOUND", msgSlotNotFound)

	// Нарушение правил бронирования
	case errors.Is(err, createReservation.ErrTransferForeignCurrency):
		handlers.RespondReason(w, http.StatusConflict, "TRANSFER_FOREIGN_CURRENCY", msgTransferForeign)
	case errors.Is(err, createReservation.ErrCapacityExceeded):
		handlers.RespondReason(w, http.StatusConflict, "CAPACITY_EXCEEDED", msgCapacityExceeded)
	case errors.Is(err, createReservation.ErrSlotInPast):
		handlers.RespondReason(w, http.StatusConflict, "SLOT_IN_PAST", msgSlotInPast)
	case errors.Is(err, createReservation.ErrSlotTooFar):
		handlers.RespondReason(w, http.StatusConflict, "SLOT_TOO_FAR", msgSlotTooFar)
	case errors.Is(err, createReservation.ErrCashLeadTime):
		handlers.RespondReason(w, http.StatusConflict, "CASH_LEAD_TIME", msgCashLeadTime)
	case errors.Is(err, createReservation.ErrSlotNotAvailable):
		handlers.RespondReason(w, http.StatusConflict, "SLOT_NOT_AVAILABLE", msgSlotNotAvailable)
	case errors.Is(err, createReservation.ErrDuplicateBooking):
		handlers.RespondReason(w, http.StatusConflict, "DUPLICATE_BOOKING", msgDuplicateBooking)
	case errors.Is(err, createReservation.ErrConsecutiveLimit):
		handlers.RespondReason(w, http.StatusConflict, "CONSECUTIVE_LIMIT", msgConsecutiveLimit)
	case errors.As(err, &shortage):
		handlers.RespondReason(w, http.StatusConflict, "INSUFFICIENT_EQUIPMENT",
			fmt.Sprintf("%s: %s, не хватает %d", msgInsufficientEquipment, shortage.Kind, shortage.Shortfall()))
	case errors.Is(err, createReservation.ErrInsufficientEquipment):
		handlers.RespondReason(w, http.StatusConflict, "INSUFFICIENT_EQUIPMENT", msgInsufficientEquipment)

	default:
		h.logger.Error("POST /reservations - Failed to create reservation: client_id=%d, product_id=%d, error=%v",
			req.ClientID, req.ProductID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Warn("POST /reservations - Rejected: client_id=%d, product_id=%d, slots=%v: %v",
		req.ClientID, req.ProductID, req.SlotIDs, err)
}
