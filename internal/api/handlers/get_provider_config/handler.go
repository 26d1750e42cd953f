package get_provider_config

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/config
// Query params: serviceId (опционально)
// Публичный endpoint - без авторизации. Возвращает действующую конфигурацию:
// услуги, провайдера или значения по умолчанию (поле level)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/config - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	serviceID, err := handlers.QueryInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/config - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetConfig(r.Context(), &models.GetConfigRequest{
		ProviderID: providerID,
		ServiceID:  serviceID,
	})
	if err != nil {
		h.logger.Error("GET /providers/{id}/config - Failed to get config: provider_id=%d, error=%v",
			providerID, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("GET /providers/{id}/config - Config retrieved successfully: provider_id=%d, level=%s",
		providerID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}
