package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/paymentgateway"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByClientID(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
	GetByRecurrenceGroup(ctx context.Context, group string) ([]*domain.Booking, error)
	TransitionStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, params bookingRepo.CancelParams) error
	MarkPaid(ctx context.Context, id int64, paymentReference string) error
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	Refund(ctx context.Context, paymentRef string, amount float64, idempotencyKey string) (*paymentgateway.Refund, error)
}

// EventPublisher интерфейс канала уведомлений
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// MetricsRecorder бизнес-метрики бронирований
type MetricsRecorder interface {
	RecordBookingOperation(operation, result string)
	RecordRefund(amount float64)
}

// RefundPolicy определяет сумму возврата при отмене оплаченного бронирования
type RefundPolicy interface {
	RefundAmount(booking *domain.Booking, now time.Time) float64
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
