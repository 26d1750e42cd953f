package get_unavailable_dates

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidFromDate   = "некорректный формат fromDate, ожидается YYYY-MM-DD"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/unavailable-dates
// Query params: fromDate (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	fromDate, err := handlers.QueryDate(r, "fromDate")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/unavailable-dates - Invalid fromDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFromDate)
		return
	}

	result, err := h.service.ListUnavailableDates(r.Context(), &models.ListUnavailableDatesRequest{
		ProviderID: providerID,
		FromDate:   fromDate,
	})
	if err != nil {
		h.logger.Error("GET /providers/{id}/unavailable-dates - Failed: provider_id=%d, error=%v", providerID, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
