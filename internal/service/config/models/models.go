package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Уровни, с которых взята действующая конфигурация
const (
	LevelService  = "service"
	LevelProvider = "provider"
	LevelDefault  = "default"
)

// Request модели

// GetConfigRequest запрос действующей конфигурации (с учетом иерархии)
type GetConfigRequest struct {
	ProviderID int64  `json:"providerId"`
	ServiceID  *int64 `json:"serviceId,omitempty"` // nil - общая конфигурация провайдера
}

// UpsertConfigRequest запрос на создание или обновление конфигурации
// Поля значений опциональны - не переданные берутся из текущей конфигурации или значений по умолчанию
type UpsertConfigRequest struct {
	ActorID                 int64  `json:"actorId"`
	ProviderID              int64  `json:"providerId"`
	ServiceID               *int64 `json:"serviceId,omitempty"` // NULL = для всех услуг
	SlotIntervalMinutes     *int   `json:"slotIntervalMinutes,omitempty"`
	MinBookingNoticeMinutes *int   `json:"minBookingNoticeMinutes,omitempty"`
	AdvanceBookingDays      *int   `json:"advanceBookingDays,omitempty"` // 0 = без ограничений
}

// ApplyToConfig применяет обновления к конфигурации
// Обновляются только непустые (not nil) поля из request
func (r *UpsertConfigRequest) ApplyToConfig(config *domain.ScheduleConfig) {
	if r.SlotIntervalMinutes != nil {
		config.SlotIntervalMinutes = *r.SlotIntervalMinutes
	}
	if r.MinBookingNoticeMinutes != nil {
		config.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
	if r.AdvanceBookingDays != nil {
		config.AdvanceBookingDays = *r.AdvanceBookingDays
	}
}

// DeleteConfigRequest запрос на удаление конфигурации
type DeleteConfigRequest struct {
	ActorID    int64  `json:"actorId"`
	ProviderID int64  `json:"providerId"`
	ServiceID  *int64 `json:"serviceId,omitempty"`
}

// Response модели

// ConfigResponse ответ с данными конфигурации
type ConfigResponse struct {
	ID                      int64      `json:"id,omitempty"`
	ProviderID              int64      `json:"providerId"`
	ServiceID               *int64     `json:"serviceId,omitempty"`
	SlotIntervalMinutes     int        `json:"slotIntervalMinutes"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	Level                   string     `json:"level"`
	CreatedAt               *time.Time `json:"createdAt,omitempty"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		ID:                      c.ID,
		ProviderID:              c.ProviderID,
		ServiceID:               c.ServiceID,
		SlotIntervalMinutes:     c.SlotIntervalMinutes,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
		AdvanceBookingDays:      c.AdvanceBookingDays,
		Level:                   ConfigLevel(c),
	}

	// Значения по умолчанию не хранятся в БД
	if !c.IsDefault() {
		createdAt, updatedAt := c.CreatedAt, c.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.ScheduleConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}
	for _, config := range configs {
		resp.Configs = append(resp.Configs, *FromDomainConfig(config))
	}
	return resp
}

// ConfigLevel уровень иерархии конфигурации
func ConfigLevel(c *domain.ScheduleConfig) string {
	switch {
	case c.IsDefault():
		return LevelDefault
	case c.IsProviderWide():
		return LevelProvider
	default:
		return LevelService
	}
}
