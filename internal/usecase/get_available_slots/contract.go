package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByProviderAndDate получает неотмененные бронирования провайдера на дату
	GetActiveByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error)
}

// AvailabilityRepository интерфейс репозитория рабочего времени
type AvailabilityRepository interface {
	GetRulesByWeekday(ctx context.Context, providerID int64, weekday time.Weekday) ([]*domain.AvailabilityRule, error)
	IsUnavailable(ctx context.Context, providerID int64, date time.Time) (bool, error)
}

// ConfigResolver возвращает действующую конфигурацию с учетом иерархии
type ConfigResolver interface {
	ResolveScheduleConfig(ctx context.Context, providerID int64, serviceID *int64) (domain.ScheduleConfig, error)
}

// CatalogClient интерфейс клиента каталога
type CatalogClient interface {
	GetProvider(ctx context.Context, providerID int64) (*catalogservice.Provider, error)
	GetService(ctx context.Context, providerID, serviceID int64) (*catalogservice.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
