package get_amount_due

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_amount_due: invalid input data")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("get_amount_due: client not found")

	// ErrRateNotConfigured возвращается, когда для иностранной валюты нет курса
	ErrRateNotConfigured = errors.New("get_amount_due: exchange rate is not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_amount_due: internal error")
)
