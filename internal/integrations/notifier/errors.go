package notifier

import "errors"

var (
	// ErrMarshalEvent событие не удалось сериализовать
	ErrMarshalEvent = errors.New("notifier: failed to marshal event")

	// ErrPublish событие не удалось положить в очередь
	ErrPublish = errors.New("notifier: failed to publish event")
)
