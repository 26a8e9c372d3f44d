package release_unpaid_holds

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("release_unpaid_holds: internal error")
)
