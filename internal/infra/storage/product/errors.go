package product

import "errors"

var (
	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = errors.New("product.repository: product not found")

	// ErrCurrencyNotFound возвращается, когда для валюты не настроен курс
	ErrCurrencyNotFound = errors.New("product.repository: currency config not found")

	// ErrInvalidProduct возвращается, когда строка товара нарушает правила типа
	ErrInvalidProduct = errors.New("product.repository: stored product is invalid")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("product.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("product.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("product.repository: failed to scan row")
)
