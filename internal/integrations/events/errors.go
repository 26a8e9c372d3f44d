package events

import "errors"

var (
	// ErrNotConnected возвращается, когда соединение с брокером не установлено
	ErrNotConnected = errors.New("events publisher: not connected")

	// ErrPublish возвращается при ошибке публикации
	ErrPublish = errors.New("events publisher: publish failed")
)
