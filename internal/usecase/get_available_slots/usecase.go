package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
)

// UseCase use case для получения слотов провайдера на дату
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	configResolver   ConfigResolver
	catalogClient    CatalogClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	configResolver ConfigResolver,
	catalogClient CatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		configResolver:   configResolver,
		catalogClient:    catalogClient,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения слотов
// Результат детерминирован: при неизменном состоянии повторный вызов возвращает тот же список
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s", req.ProviderID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)

	// 3. Проверяем провайдера
	if _, err := uc.catalogClient.GetProvider(ctx, req.ProviderID); err != nil {
		if errors.Is(err, catalogClient.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 4. Проверяем услугу, если указана
	if req.ServiceID != nil {
		if _, err := uc.catalogClient.GetService(ctx, req.ProviderID, *req.ServiceID); err != nil {
			if errors.Is(err, catalogClient.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	// 5. Получаем конфигурацию с учетом иерархии
	config, err := uc.configResolver.ResolveScheduleConfig(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	// 6. Валидация даты с учетом конфигурации
	if err := validateDate(date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Рабочее время, нерабочие дни и активные бронирования
	rules, err := uc.availabilityRepo.GetRulesByWeekday(ctx, req.ProviderID, date.Weekday())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	blackout, err := uc.availabilityRepo.IsUnavailable(ctx, req.ProviderID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check unavailable date: %v", err)
		return nil, fmt.Errorf("%w: failed to check unavailable date: %v", ErrInternal, err)
	}

	var bookings []*domain.Booking
	if !blackout && len(rules) > 0 {
		bookings, err = uc.bookingRepo.GetActiveByProviderAndDate(ctx, req.ProviderID, date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
	}

	// 8. Генерируем слоты
	timeSlots, err := scheduling.GenerateSlots(date, rules, blackout, bookings, config.SlotIntervalMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 9. Для сегодняшнего дня убираем слоты ближе minBookingNoticeMinutes
	timeSlots = scheduling.FilterByNotice(timeSlots, date, now, config.MinBookingNoticeMinutes)

	slots := make([]Slot, 0, len(timeSlots))
	for _, s := range timeSlots {
		slots = append(slots, Slot{
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			IsAvailable: s.IsAvailable,
		})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for provider=%d, date=%s",
		len(slots), req.ProviderID, date.Format(domain.DateFormat))

	return &Response{
		Date:            date,
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		IntervalMinutes: config.SlotIntervalMinutes,
		Slots:           slots,
	}, nil
}
