package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	LockProvider(ctx context.Context, providerID int64) error
	GetActiveByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error)
	UpdateSchedule(ctx context.Context, id int64, date time.Time, start types.TimeString) error
}

// AvailabilityRepository интерфейс репозитория рабочего времени
type AvailabilityRepository interface {
	GetRulesByWeekday(ctx context.Context, providerID int64, weekday time.Weekday) ([]*domain.AvailabilityRule, error)
	IsUnavailable(ctx context.Context, providerID int64, date time.Time) (bool, error)
}

// ConfigResolver возвращает действующую конфигурацию расписания
type ConfigResolver interface {
	ResolveScheduleConfig(ctx context.Context, providerID int64, serviceID *int64) (domain.ScheduleConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события жизненного цикла бронирования
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// MetricsRecorder бизнес-метрики
type MetricsRecorder interface {
	RecordBookingOperation(operation, result string)
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
