package catalogservice

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrProviderNotFound провайдер не найден в каталоге
	ErrProviderNotFound = fmt.Errorf("catalogservice: provider not found: %w", domain.ErrNotFound)

	// ErrServiceNotFound услуга не найдена у провайдера
	ErrServiceNotFound = fmt.Errorf("catalogservice: service not found: %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")

	// ErrUnavailable каталог недоступен (сеть, таймаут, 5xx)
	ErrUnavailable = errors.New("catalogservice client: service unavailable")
)
