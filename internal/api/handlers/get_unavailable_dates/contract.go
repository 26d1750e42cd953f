package get_unavailable_dates

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	ListUnavailableDates(ctx context.Context, req *models.ListUnavailableDatesRequest) (*models.UnavailableDateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
