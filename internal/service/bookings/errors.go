package bookings

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = fmt.Errorf("bookings: %w", domain.ErrAccessDenied)

	// ErrInvalidTransition переход статуса недопустим из текущего состояния
	ErrInvalidTransition = fmt.Errorf("bookings: %w", domain.ErrInvalidTransition)

	// ErrPaymentNotAllowed оплату нельзя записать (уже оплачено, возвращено или отменено)
	ErrPaymentNotAllowed = fmt.Errorf("bookings: payment cannot be recorded: %w", domain.ErrConflict)

	// ErrMissingPaymentReference у оплаченного бронирования нет ссылки на платеж
	ErrMissingPaymentReference = fmt.Errorf("bookings: paid booking has no payment reference: %w", domain.ErrPaymentGateway)

	// ErrRefundFailed возврат средств не выполнен, бронирование не отменено
	ErrRefundFailed = fmt.Errorf("bookings: refund failed: %w", domain.ErrPaymentGateway)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("bookings: invalid input: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("bookings: internal error: %w", domain.ErrPersistence)
)
