package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/config"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	repo     ConfigRepository
	catalog  CatalogClient
	defaults domain.ScheduleConfig
	logger   Logger
}

// NewService создает новый экземпляр сервиса конфигурации
// defaults - значения из файла конфигурации, используются если у провайдера нет своих настроек
func NewService(repo ConfigRepository, catalog CatalogClient, defaults domain.ScheduleConfig, logger Logger) *Service {
	return &Service{
		repo:     repo,
		catalog:  catalog,
		defaults: defaults,
		logger:   logger,
	}
}

// ResolveScheduleConfig возвращает действующую конфигурацию с учетом иерархии:
// 1. Конфигурация конкретной услуги
// 2. Общая конфигурация провайдера
// 3. Значения по умолчанию
func (s *Service) ResolveScheduleConfig(ctx context.Context, providerID int64, serviceID *int64) (domain.ScheduleConfig, error) {
	config, err := s.repo.GetConfigWithHierarchy(ctx, providerID, serviceID)
	if err == nil {
		return *config, nil
	}
	if !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("Failed to resolve schedule config: provider_id=%d, error=%v", providerID, err)
		return domain.ScheduleConfig{}, fmt.Errorf("%w: ResolveScheduleConfig - repository error: %v", ErrInternal, err)
	}

	defaults := s.defaults
	defaults.ProviderID = providerID
	defaults.ServiceID = serviceID
	return defaults, nil
}

// GetConfig возвращает действующую конфигурацию (публичный метод)
func (s *Service) GetConfig(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	config, err := s.ResolveScheduleConfig(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainConfig(&config), nil
}

// GetAllByProvider возвращает все сохраненные конфигурации провайдера (только для провайдера)
func (s *Service) GetAllByProvider(ctx context.Context, providerID, actorID int64) (*models.ConfigListResponse, error) {
	if actorID != providerID {
		s.logger.Warn("Access denied to configs: provider_id=%d, actor_id=%d", providerID, actorID)
		return nil, fmt.Errorf("%w: GetAllByProvider - actor %d is not provider %d", ErrAccessDenied, actorID, providerID)
	}

	configs, err := s.repo.GetAllByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("Failed to get configs: provider_id=%d, error=%v", providerID, err)
		return nil, fmt.Errorf("%w: GetAllByProvider - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfigList(configs), nil
}

// Upsert создает или частично обновляет конфигурацию провайдера
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	// 1. Проверяем права: менять настройки может только сам провайдер
	if req.ActorID != req.ProviderID {
		s.logger.Warn("Access denied to update config: provider_id=%d, actor_id=%d", req.ProviderID, req.ActorID)
		return nil, fmt.Errorf("%w: Upsert - actor %d is not provider %d", ErrAccessDenied, req.ActorID, req.ProviderID)
	}

	// 2. Конфигурация услуги допустима только для услуги этого провайдера
	if req.ServiceID != nil {
		if _, err := s.catalog.GetService(ctx, req.ProviderID, *req.ServiceID); err != nil {
			if errors.Is(err, catalogservice.ErrServiceNotFound) {
				return nil, fmt.Errorf("%w: Upsert - service %d of provider %d", ErrServiceNotFound, *req.ServiceID, req.ProviderID)
			}
			s.logger.Error("Failed to check service: provider_id=%d, service_id=%d, error=%v", req.ProviderID, *req.ServiceID, err)
			return nil, fmt.Errorf("%w: Upsert - catalog error: %v", ErrInternal, err)
		}
	}

	// 3. Ищем существующую конфигурацию именно этого уровня
	existing, err := s.repo.GetByProviderAndService(ctx, req.ProviderID, req.ServiceID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("Failed to get config: provider_id=%d, error=%v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	// 4. Незаданные поля берем из текущей конфигурации или из значений по умолчанию
	var config domain.ScheduleConfig
	if existing != nil {
		config = *existing
	} else {
		config = s.defaults
		config.ProviderID = req.ProviderID
		config.ServiceID = req.ServiceID
	}
	req.ApplyToConfig(&config)

	// 5. Валидируем итоговые значения
	if err := validateConfigData(&config); err != nil {
		return nil, fmt.Errorf("%w: Upsert - %v", ErrInvalidInput, err)
	}

	// 6. Сохраняем
	var saved *domain.ScheduleConfig
	if existing != nil {
		saved, err = s.repo.Update(ctx, existing.ID, &config)
	} else {
		saved, err = s.repo.Create(ctx, &config)
	}
	if errors.Is(err, configRepo.ErrDuplicateConfig) {
		return nil, fmt.Errorf("Upsert - concurrent create: %w", err)
	}
	if err != nil {
		s.logger.Error("Failed to save config: provider_id=%d, error=%v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Schedule config saved: id=%d, provider_id=%d, level=%s", saved.ID, saved.ProviderID, models.ConfigLevel(saved))

	return models.FromDomainConfig(saved), nil
}

// Delete удаляет конфигурацию указанного уровня
func (s *Service) Delete(ctx context.Context, req *models.DeleteConfigRequest) error {
	if req.ActorID != req.ProviderID {
		s.logger.Warn("Access denied to delete config: provider_id=%d, actor_id=%d", req.ProviderID, req.ActorID)
		return fmt.Errorf("%w: Delete - actor %d is not provider %d", ErrAccessDenied, req.ActorID, req.ProviderID)
	}

	if err := s.repo.DeleteByProviderAndService(ctx, req.ProviderID, req.ServiceID); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return fmt.Errorf("%w: Delete - provider %d", ErrConfigNotFound, req.ProviderID)
		}
		s.logger.Error("Failed to delete config: provider_id=%d, error=%v", req.ProviderID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Schedule config deleted: provider_id=%d", req.ProviderID)
	return nil
}

// validateConfigData проверяет бизнес-правила конфигурации
func validateConfigData(config *domain.ScheduleConfig) error {
	if config.SlotIntervalMinutes < domain.MinSlotIntervalMinutes || config.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("slotIntervalMinutes must be between %d and %d", domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	if config.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || config.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("minBookingNoticeMinutes must be between %d and %d", domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	if config.AdvanceBookingDays < domain.MinAdvanceBookingDays || config.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("advanceBookingDays must be between %d and %d", domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}
