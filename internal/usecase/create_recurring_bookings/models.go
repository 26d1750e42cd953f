package create_recurring_bookings

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание серии бронирований
type Request struct {
	ClientID       int64
	ProviderID     int64
	ServiceID      int64
	Date           time.Time        // Дата первого бронирования серии
	StartTime      types.TimeString // Время всех бронирований серии
	Notes          *string
	RecurrenceType domain.RecurrenceType
	Occurrences    int // 1..52
}

// SkippedOccurrence пропущенная из-за конфликта дата
type SkippedOccurrence struct {
	Sequence int    `json:"sequence"`
	Date     string `json:"date"`
	Reason   string `json:"reason"`
}

// Response результат создания серии
type Response struct {
	RecurrenceGroup string                   `json:"recurrenceGroup"`
	RecurrenceType  string                   `json:"recurrenceType"`
	Bookings        []models.BookingResponse `json:"bookings"`
	Skipped         []SkippedOccurrence      `json:"skipped"`
}
