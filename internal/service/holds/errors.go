package holds

import "errors"

// ErrInternal возвращается при ошибках хранилища
var ErrInternal = errors.New("holds: internal error")
