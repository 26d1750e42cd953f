package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const operationName = "reschedule"

// UseCase use case для переноса бронирования на другое окно
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	configResolver   ConfigResolver
	txManager        TransactionManager
	publisher        EventPublisher
	metrics          MetricsRecorder
	timeProvider     TimeProvider
	logger           Logger
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	configResolver ConfigResolver,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		configResolver:   configResolver,
		txManager:        txManager,
		publisher:        publisher,
		metrics:          metrics,
		timeProvider:     realTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переносит бронирование. Статус не меняется
// Новое окно проверяется так же, как при создании, само бронирование из проверки пересечений исключается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	booking, err := uc.execute(ctx, req)
	if uc.metrics != nil {
		uc.metrics.RecordBookingOperation(operationName, domain.ResultLabel(err))
	}
	if err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		event := domain.NewBookingEvent(domain.EventBookingRescheduled, booking, uc.timeProvider.Now())
		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Warn("RescheduleBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
		}
	}

	return models.FromDomainBooking(booking), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, actor=%d, date=%s, time=%s",
		req.BookingID, req.ActorID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)

	// 2. Получаем бронирование и проверяем права
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.IsParticipant(req.ActorID) {
		uc.logger.Warn("RescheduleBooking: user %d is not a participant of booking id=%d", req.ActorID, req.BookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeRescheduled() {
		return nil, fmt.Errorf("%w: status %s", ErrCannotReschedule, booking.Status)
	}

	// 3. Конфигурация и проверки даты
	config, err := uc.configResolver.ResolveScheduleConfig(ctx, booking.ProviderID, ptr.Ptr(booking.ServiceID))
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	if err := validateDate(date, now, config.AdvanceBookingDays); err != nil {
		return nil, err
	}
	if err := validateBookingTime(date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
		return nil, err
	}

	var result *domain.Booking

	// 4. Проверка нового окна и перенос в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockProvider(txCtx, booking.ProviderID); err != nil {
			return fmt.Errorf("%w: failed to lock provider: %w", ErrInternal, err)
		}

		// 4.1. Перечитываем бронирование под блокировкой
		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		if !current.CanBeRescheduled() {
			return fmt.Errorf("%w: status %s", ErrCannotReschedule, current.Status)
		}

		// 4.2. Рабочее время, нерабочие дни и бронирования на новую дату
		rules, err := uc.availabilityRepo.GetRulesByWeekday(txCtx, current.ProviderID, date.Weekday())
		if err != nil {
			return fmt.Errorf("%w: failed to get availability: %w", ErrInternal, err)
		}
		blackout, err := uc.availabilityRepo.IsUnavailable(txCtx, current.ProviderID, date)
		if err != nil {
			return fmt.Errorf("%w: failed to check unavailable date: %w", ErrInternal, err)
		}
		bookings, err := uc.bookingRepo.GetActiveByProviderAndDate(txCtx, current.ProviderID, date)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 4.3. Проверяем окно, исключая само бронирование
		if err := scheduling.CheckWindow(rules, blackout, bookings, req.StartTime, current.DurationMinutes, current.ID); err != nil {
			uc.logger.Warn("RescheduleBooking: window rejected for booking id=%d: %v", current.ID, err)
			return mapWindowError(err)
		}

		// 4.4. Переносим
		err = uc.bookingRepo.UpdateSchedule(txCtx, current.ID, date, req.StartTime)
		switch {
		case errors.Is(err, bookingRepo.ErrOverlap):
			return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		case errors.Is(err, bookingRepo.ErrNoRowsUpdated):
			return fmt.Errorf("%w: booking id=%d changed concurrently", ErrCannotReschedule, current.ID)
		case err != nil:
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		current.ScheduledDate = date
		current.ScheduledTime = req.StartTime
		current.UpdatedAt = now
		result = current
		return nil
	})

	if err != nil {
		if domain.ErrorKind(err) == nil {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
		if errors.Is(err, domain.ErrPersistence) {
			uc.logger.Error("RescheduleBooking: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s %s",
		result.ID, result.ScheduledDate.Format(domain.DateFormat), result.ScheduledTime)

	return result, nil
}
