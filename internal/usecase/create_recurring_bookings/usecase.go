package create_recurring_bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const operationName = "recurring"

// UseCase use case для создания повторяющейся серии бронирований
type UseCase struct {
	creator BookingCreator
	newID   GroupIDGenerator
	metrics MetricsRecorder
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(creator BookingCreator, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		creator: creator,
		newID:   uuid.NewString,
		metrics: metrics,
		logger:  logger,
	}
}

// WithGroupIDGenerator подменяет генератор идентификатора серии
func (uc *UseCase) WithGroupIDGenerator(gen GroupIDGenerator) *UseCase {
	uc.newID = gen
	return uc
}

// Execute создает серию бронирований
//
// Каждое вхождение создается отдельной транзакцией тем же путем, что и одиночное бронирование.
// Вхождение с конфликтом (занято, нерабочий день, вне рабочих часов) пропускается,
// номер вхождения при этом не переиспользуется. Любая другая ошибка прерывает серию:
// возвращается ошибка вместе с уже созданными бронированиями.
// Если пропущены все вхождения, возвращается ErrNoOccurrencesCreated
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	if uc.metrics != nil {
		uc.metrics.RecordBookingOperation(operationName, domain.ResultLabel(err))
	}
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateRecurringBookings: validation failed: %v", err)
		return nil, err
	}

	group := uc.newID()
	dates := req.RecurrenceType.OccurrenceDates(domain.DateOnly(req.Date), req.Occurrences)

	uc.logger.Info("CreateRecurringBookings: group=%s, client=%d, provider=%d, type=%s, occurrences=%d",
		group, req.ClientID, req.ProviderID, req.RecurrenceType, req.Occurrences)

	resp := &Response{
		RecurrenceGroup: group,
		RecurrenceType:  string(req.RecurrenceType),
		Bookings:        make([]models.BookingResponse, 0, len(dates)),
		Skipped:         make([]SkippedOccurrence, 0),
	}

	// 2. Создаем вхождения по порядку
	for i, date := range dates {
		sequence := i + 1
		created, err := uc.creator.Execute(ctx, &create_booking.Request{
			ClientID:           req.ClientID,
			ProviderID:         req.ProviderID,
			ServiceID:          req.ServiceID,
			Date:               date,
			StartTime:          req.StartTime,
			Notes:              req.Notes,
			RecurrenceGroup:    ptr.Ptr(group),
			RecurrenceSequence: ptr.Ptr(sequence),
		})

		if errors.Is(err, domain.ErrConflict) {
			uc.logger.Info("CreateRecurringBookings: group=%s, skipped #%d on %s: %v",
				group, sequence, date.Format(domain.DateFormat), err)
			resp.Skipped = append(resp.Skipped, SkippedOccurrence{
				Sequence: sequence,
				Date:     date.Format(domain.DateFormat),
				Reason:   err.Error(),
			})
			continue
		}
		if err != nil {
			uc.logger.Error("CreateRecurringBookings: group=%s, aborted at #%d after %d created: %v",
				group, sequence, len(resp.Bookings), err)
			return resp, fmt.Errorf("occurrence #%d on %s: %w", sequence, date.Format(domain.DateFormat), err)
		}

		resp.Bookings = append(resp.Bookings, *created)
	}

	if len(resp.Bookings) == 0 {
		return resp, ErrNoOccurrencesCreated
	}

	uc.logger.Info("CreateRecurringBookings: group=%s, created=%d, skipped=%d",
		group, len(resp.Bookings), len(resp.Skipped))

	return resp, nil
}
