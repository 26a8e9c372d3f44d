package apply_storm_insurance

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("apply_storm_insurance: invalid input data")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("apply_storm_insurance: client not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_storm_insurance: internal error")
)
