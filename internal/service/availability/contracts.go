package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория доступности провайдера
type AvailabilityRepository interface {
	ReplaceWeekdayRules(ctx context.Context, providerID int64, weekday time.Weekday, ranges []domain.TimeRange) ([]*domain.AvailabilityRule, error)
	GetRulesByProvider(ctx context.Context, providerID int64) ([]*domain.AvailabilityRule, error)
	UpsertUnavailableDate(ctx context.Context, date *domain.UnavailableDate) (*domain.UnavailableDate, error)
	DeleteUnavailableDate(ctx context.Context, providerID, id int64) error
	ListUnavailableDates(ctx context.Context, providerID int64, from *time.Time) ([]*domain.UnavailableDate, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
