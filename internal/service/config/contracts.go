package config

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	GetByProviderAndService(ctx context.Context, providerID int64, serviceID *int64) (*domain.ScheduleConfig, error)
	GetConfigWithHierarchy(ctx context.Context, providerID int64, serviceID *int64) (*domain.ScheduleConfig, error)
	GetAllByProvider(ctx context.Context, providerID int64) ([]*domain.ScheduleConfig, error)
	Update(ctx context.Context, id int64, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	DeleteByProviderAndService(ctx context.Context, providerID int64, serviceID *int64) error
}

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, providerID, serviceID int64) (*catalogservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
