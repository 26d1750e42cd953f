package set_availability

import (
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
)

// SetAvailabilityRequest HTTP request model
// Пустой ranges делает день нерабочим
type SetAvailabilityRequest struct {
	Weekday *int                  `json:"weekday" validate:"required,min=0,max=6"`
	Ranges  []models.TimeRangeDTO `json:"ranges" validate:"dive"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetAvailabilityRequest) ToServiceRequest(providerID, actorID int64) *models.SetWeekdayRulesRequest {
	ranges := r.Ranges
	if ranges == nil {
		ranges = []models.TimeRangeDTO{}
	}

	return &models.SetWeekdayRulesRequest{
		ActorID:    actorID,
		ProviderID: providerID,
		Weekday:    *r.Weekday,
		Ranges:     ranges,
	}
}
