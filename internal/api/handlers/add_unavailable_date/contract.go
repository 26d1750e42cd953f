package add_unavailable_date

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	AddUnavailableDate(ctx context.Context, req *models.AddUnavailableDateRequest) (*models.UnavailableDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
