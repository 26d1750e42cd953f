package update_provider_config

import (
	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
)

// UpdateProviderConfigRequest HTTP request model
// Диапазоны значений проверяет сервис
type UpdateProviderConfigRequest struct {
	ServiceID               *int64 `json:"serviceId,omitempty" validate:"omitempty,gt=0"`
	SlotIntervalMinutes     *int   `json:"slotIntervalMinutes,omitempty"`
	MinBookingNoticeMinutes *int   `json:"minBookingNoticeMinutes,omitempty"`
	AdvanceBookingDays      *int   `json:"advanceBookingDays,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateProviderConfigRequest) ToServiceRequest(providerID, actorID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		ActorID:                 actorID,
		ProviderID:              providerID,
		ServiceID:               r.ServiceID,
		SlotIntervalMinutes:     r.SlotIntervalMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}
