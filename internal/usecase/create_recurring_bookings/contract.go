package create_recurring_bookings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// BookingCreator создает одно бронирование (usecase create_booking)
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*models.BookingResponse, error)
}

// GroupIDGenerator генерирует идентификатор серии
type GroupIDGenerator func() string

// MetricsRecorder бизнес-метрики
type MetricsRecorder interface {
	RecordBookingOperation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
