package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrTooManySlots возвращается, когда в запросе больше 3 слотов
	ErrTooManySlots = errors.New("create_reservation: no more than 3 slots per request")

	// ErrInvalidPaymentMethod возвращается при неизвестном способе оплаты
	ErrInvalidPaymentMethod = errors.New("create_reservation: invalid payment method")

	// ErrInvalidCurrency возвращается при неизвестной валюте
	ErrInvalidCurrency = errors.New("create_reservation: invalid currency")

	// ErrTransferForeignCurrency возвращается при попытке оплатить переводом в иностранной валюте
	ErrTransferForeignCurrency = errors.New("create_reservation: transfer is only allowed in local currency")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_reservation: client not found")

	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = errors.New("create_reservation: product not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_reservation: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот уже занят или закрыт
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrCapacityExceeded возвращается, когда людей больше, чем вмещает товар
	ErrCapacityExceeded = errors.New("create_reservation: party size exceeds product capacity")

	// ErrSlotInPast возвращается, когда слот уже начался
	ErrSlotInPast = errors.New("create_reservation: slot is in the past")

	// ErrSlotTooFar возвращается, когда слот дальше 48 часов от текущего момента
	ErrSlotTooFar = errors.New("create_reservation: slot is more than 48 hours ahead")

	// ErrCashLeadTime возвращается, когда наличными бронируют менее чем за 2 часа до слота
	ErrCashLeadTime = errors.New("create_reservation: cash bookings require at least 2 hours lead time")

	// ErrDuplicateBooking возвращается, когда у клиента уже есть активное бронирование на слот
	ErrDuplicateBooking = errors.New("create_reservation: client already holds this slot")

	// ErrConsecutiveLimit возвращается, когда получилось бы больше 3 слотов подряд
	ErrConsecutiveLimit = errors.New("create_reservation: more than 3 consecutive slots")

	// ErrInsufficientEquipment возвращается, когда не хватает защитного снаряжения
	ErrInsufficientEquipment = errors.New("create_reservation: insufficient safety equipment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
