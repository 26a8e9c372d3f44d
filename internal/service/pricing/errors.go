package pricing

import "errors"

var (
	// ErrExchangeRateNotConfigured возвращается, когда для иностранной валюты нет курса
	ErrExchangeRateNotConfigured = errors.New("pricing: exchange rate is not configured")

	// ErrEmptyBatch возвращается при попытке рассчитать пустой набор
	ErrEmptyBatch = errors.New("pricing: nothing to price")

	// ErrInternal возвращается при ошибках загрузки курсов
	ErrInternal = errors.New("pricing: internal error")
)
