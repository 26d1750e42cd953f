package create_recurring_bookings

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createRecurring "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_recurring_bookings"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateRecurringBookingsRequest HTTP request model
type CreateRecurringBookingsRequest struct {
	ProviderID     int64   `json:"providerId" validate:"required,gt=0"`
	ServiceID      int64   `json:"serviceId" validate:"required,gt=0"`
	Date           string  `json:"date" validate:"required"` // дата первого бронирования
	StartTime      string  `json:"startTime" validate:"required"`
	Notes          *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	RecurrenceType string  `json:"recurrenceType" validate:"required,oneof=weekly biweekly monthly"`
	Occurrences    int     `json:"occurrences" validate:"required,min=1,max=52"`
}

// PartialSeriesResponse ответ 207: серия прервана, часть бронирований уже создана
// AbortedStatus HTTP статус ошибки, на которой серия остановилась
type PartialSeriesResponse struct {
	*createRecurring.Response
	Error         string `json:"error"`
	AbortedStatus int    `json:"abortedStatus"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRecurringBookingsRequest) ToUseCaseRequest(clientID int64) (*createRecurring.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	recurrenceType, err := domain.ParseRecurrenceType(r.RecurrenceType)
	if err != nil {
		return nil, err
	}

	return &createRecurring.Request{
		ClientID:       clientID,
		ProviderID:     r.ProviderID,
		ServiceID:      r.ServiceID,
		Date:           date,
		StartTime:      startTime,
		Notes:          r.Notes,
		RecurrenceType: recurrenceType,
		Occurrences:    r.Occurrences,
	}, nil
}
