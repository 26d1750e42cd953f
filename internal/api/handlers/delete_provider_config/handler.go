package delete_provider_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidParams     = "некорректные параметры запроса"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "конфигурация не найдена"
	msgForbidden         = "доступ запрещен"
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

// Handle DELETE /api/v1/providers/{providerId}/config
// Query params: serviceId (опционально). После удаления действует следующий уровень иерархии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	serviceID, err := handlers.QueryInt64(r, "serviceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Delete(r.Context(), &models.DeleteConfigRequest{
		ActorID:    userID,
		ProviderID: providerID,
		ServiceID:  serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("DELETE /providers/{id}/config - Access denied: provider_id=%d, user_id=%d", providerID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("DELETE /providers/{id}/config - Failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	h.logger.Info("DELETE /providers/{id}/config - Config deleted: provider_id=%d, service_id=%v", providerID, serviceID)
	w.WriteHeader(http.StatusNoContent)
}
