package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	catalogClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const operationName = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	configResolver   ConfigResolver
	catalogClient    CatalogClient
	txManager        TransactionManager
	publisher        EventPublisher
	metrics          MetricsRecorder
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	configResolver ConfigResolver,
	catalogClient CatalogClient,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		configResolver:   configResolver,
		catalogClient:    catalogClient,
		txManager:        txManager,
		publisher:        publisher,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка окна и вставка выполняются в сериализуемой транзакции под advisory lock провайдера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	booking, err := uc.execute(ctx, req)
	if uc.metrics != nil {
		uc.metrics.RecordBookingOperation(operationName, domain.ResultLabel(err))
	}
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, booking)

	return models.FromDomainBooking(booking), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: client=%d, provider=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)

	// 3. Получаем услугу (длительность и цена берутся из каталога)
	service, err := uc.catalogClient.GetService(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d of provider id=%d not found", req.ServiceID, req.ProviderID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем конфигурацию расписания с учетом иерархии
	config, err := uc.configResolver.ResolveScheduleConfig(ctx, req.ProviderID, ptr.Ptr(req.ServiceID))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	// 5. Валидация даты и времени с учетом конфигурации
	if err := validateDate(date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingTime(date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Сериализуем запись бронирований одного провайдера
		if err := uc.bookingRepo.LockProvider(txCtx, req.ProviderID); err != nil {
			return fmt.Errorf("%w: failed to lock provider: %w", ErrInternal, err)
		}

		// 6.2. Рабочее время и нерабочие дни
		rules, err := uc.availabilityRepo.GetRulesByWeekday(txCtx, req.ProviderID, date.Weekday())
		if err != nil {
			return fmt.Errorf("%w: failed to get availability: %w", ErrInternal, err)
		}
		blackout, err := uc.availabilityRepo.IsUnavailable(txCtx, req.ProviderID, date)
		if err != nil {
			return fmt.Errorf("%w: failed to check unavailable date: %w", ErrInternal, err)
		}

		// 6.3. Активные бронирования на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetActiveByProviderAndDate(txCtx, req.ProviderID, date)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 6.4. Проверяем окно
		if err := scheduling.CheckWindow(rules, blackout, bookings, req.StartTime, service.DurationMinutes, 0); err != nil {
			uc.logger.Warn("CreateBooking: window rejected: provider=%d, date=%s, time=%s: %v",
				req.ProviderID, date.Format(domain.DateFormat), req.StartTime, err)
			return mapWindowError(err)
		}

		// 6.5. Создаем бронирование с денормализацией данных услуги
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ClientID:           req.ClientID,
			ProviderID:         req.ProviderID,
			ServiceID:          req.ServiceID,
			ScheduledDate:      date,
			ScheduledTime:      req.StartTime,
			DurationMinutes:    service.DurationMinutes,
			Status:             domain.StatusPending,
			PaymentStatus:      domain.PaymentUnpaid,
			Price:              service.PriceOrZero(),
			RecurrenceGroup:    req.RecurrenceGroup,
			RecurrenceSequence: req.RecurrenceSequence,
			Notes:              req.Notes,
		})
		if errors.Is(err, bookingRepo.ErrOverlap) {
			return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if domain.ErrorKind(err) == nil {
			// ошибки транзакции (begin/commit, исчерпаны повторы)
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
		if errors.Is(err, domain.ErrPersistence) {
			uc.logger.Error("CreateBooking: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return result, nil
}

func (uc *UseCase) publish(ctx context.Context, booking *domain.Booking) {
	if uc.publisher == nil {
		return
	}
	event := domain.NewBookingEvent(domain.EventBookingCreated, booking, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}
}
