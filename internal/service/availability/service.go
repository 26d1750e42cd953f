package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
)

// Service сервис управления рабочим временем провайдера
type Service struct {
	repo      AvailabilityRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(repo AvailabilityRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetWeeklyRules возвращает недельное расписание провайдера
func (s *Service) GetWeeklyRules(ctx context.Context, providerID int64) (*models.WeeklyRulesResponse, error) {
	if providerID <= 0 {
		return nil, fmt.Errorf("%w: GetWeeklyRules - providerId must be positive", ErrInvalidInput)
	}

	rules, err := s.repo.GetRulesByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("Failed to get availability rules: provider_id=%d, error=%v", providerID, err)
		return nil, fmt.Errorf("%w: GetWeeklyRules - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(providerID, rules), nil
}

// SetWeekdayRules атомарно заменяет интервалы одного дня недели
func (s *Service) SetWeekdayRules(ctx context.Context, req *models.SetWeekdayRulesRequest) (*models.WeeklyRulesResponse, error) {
	// 1. Проверяем права
	if req.ActorID != req.ProviderID {
		s.logger.Warn("Access denied to availability: provider_id=%d, actor_id=%d", req.ProviderID, req.ActorID)
		return nil, fmt.Errorf("%w: SetWeekdayRules - actor %d is not provider %d", ErrAccessDenied, req.ActorID, req.ProviderID)
	}

	// 2. Валидируем день и интервалы
	if err := domain.ValidateWeekday(req.Weekday); err != nil {
		return nil, fmt.Errorf("SetWeekdayRules: %w", err)
	}
	ranges, err := parseRanges(req.Ranges)
	if err != nil {
		return nil, err
	}

	// 3. Удаление и вставка в одной транзакции
	weekday := time.Weekday(req.Weekday)
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		_, err := s.repo.ReplaceWeekdayRules(ctx, req.ProviderID, weekday, ranges)
		return err
	})
	if err != nil {
		s.logger.Error("Failed to replace availability rules: provider_id=%d, weekday=%d, error=%v", req.ProviderID, req.Weekday, err)
		return nil, fmt.Errorf("%w: SetWeekdayRules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Availability updated: provider_id=%d, weekday=%s, ranges=%d", req.ProviderID, weekday, len(ranges))

	return s.GetWeeklyRules(ctx, req.ProviderID)
}

// ListUnavailableDates возвращает нерабочие дни провайдера
func (s *Service) ListUnavailableDates(ctx context.Context, req *models.ListUnavailableDatesRequest) (*models.UnavailableDateListResponse, error) {
	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: ListUnavailableDates - providerId must be positive", ErrInvalidInput)
	}

	var from *time.Time
	if req.FromDate != nil {
		d := domain.DateOnly(*req.FromDate)
		from = &d
	}

	dates, err := s.repo.ListUnavailableDates(ctx, req.ProviderID, from)
	if err != nil {
		s.logger.Error("Failed to list unavailable dates: provider_id=%d, error=%v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ListUnavailableDates - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUnavailableDateList(dates), nil
}

// AddUnavailableDate добавляет нерабочий день. Повторный вызов для той же даты обновляет причину
func (s *Service) AddUnavailableDate(ctx context.Context, req *models.AddUnavailableDateRequest) (*models.UnavailableDateResponse, error) {
	if req.ActorID != req.ProviderID {
		s.logger.Warn("Access denied to unavailable dates: provider_id=%d, actor_id=%d", req.ProviderID, req.ActorID)
		return nil, fmt.Errorf("%w: AddUnavailableDate - actor %d is not provider %d", ErrAccessDenied, req.ActorID, req.ProviderID)
	}

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: AddUnavailableDate - date is required", ErrInvalidInput)
	}

	var reason *string
	if req.Reason != nil {
		trimmed := strings.TrimSpace(*req.Reason)
		if len(trimmed) > domain.MaxUnavailableReasonLength {
			return nil, fmt.Errorf("%w: AddUnavailableDate - reason exceeds %d characters", ErrInvalidInput, domain.MaxUnavailableReasonLength)
		}
		if trimmed != "" {
			reason = &trimmed
		}
	}

	saved, err := s.repo.UpsertUnavailableDate(ctx, &domain.UnavailableDate{
		ProviderID: req.ProviderID,
		Date:       domain.DateOnly(req.Date),
		Reason:     reason,
	})
	if err != nil {
		s.logger.Error("Failed to save unavailable date: provider_id=%d, error=%v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: AddUnavailableDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Unavailable date saved: id=%d, provider_id=%d, date=%s", saved.ID, saved.ProviderID, saved.Date.Format(domain.DateFormat))

	return models.FromDomainUnavailableDate(saved), nil
}

// RemoveUnavailableDate удаляет нерабочий день
func (s *Service) RemoveUnavailableDate(ctx context.Context, req *models.RemoveUnavailableDateRequest) error {
	if req.ActorID != req.ProviderID {
		s.logger.Warn("Access denied to unavailable dates: provider_id=%d, actor_id=%d", req.ProviderID, req.ActorID)
		return fmt.Errorf("%w: RemoveUnavailableDate - actor %d is not provider %d", ErrAccessDenied, req.ActorID, req.ProviderID)
	}

	if err := s.repo.DeleteUnavailableDate(ctx, req.ProviderID, req.DateID); err != nil {
		if errors.Is(err, availabilityRepo.ErrUnavailableDateNotFound) {
			return fmt.Errorf("%w: RemoveUnavailableDate - id=%d", ErrUnavailableDateNotFound, req.DateID)
		}
		s.logger.Error("Failed to delete unavailable date: id=%d, error=%v", req.DateID, err)
		return fmt.Errorf("%w: RemoveUnavailableDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Unavailable date removed: id=%d, provider_id=%d", req.DateID, req.ProviderID)
	return nil
}

// parseRanges парсит интервалы и проверяет, что они не пересекаются
func parseRanges(dtos []models.TimeRangeDTO) ([]domain.TimeRange, error) {
	if len(dtos) > domain.MaxRangesPerWeekday {
		return nil, fmt.Errorf("%w: at most %d ranges per weekday", ErrInvalidInput, domain.MaxRangesPerWeekday)
	}

	ranges := make([]domain.TimeRange, 0, len(dtos))
	for i, dto := range dtos {
		r, err := dto.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: range %d: %v", ErrInvalidInput, i, err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("range %d %s-%s: %w", i, dto.Start, dto.End, err)
		}
		ranges = append(ranges, r)
	}

	sort.Slice(ranges, func(a, b int) bool { return ranges[a].Start.IsBefore(ranges[b].Start) })
	for i := 1; i < len(ranges); i++ {
		if ranges[i-1].Overlaps(ranges[i]) {
			return nil, fmt.Errorf("%w: %s-%s and %s-%s", ErrOverlappingRanges,
				ranges[i-1].Start, ranges[i-1].End, ranges[i].Start, ranges[i].End)
		}
	}

	return ranges, nil
}
