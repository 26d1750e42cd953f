package remove_unavailable_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
)

const (
	msgInvalidID     = "некорректный ID"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "нерабочий день не найден"
	msgForbidden     = "доступ запрещен"
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

// Handle DELETE /api/v1/providers/{providerId}/unavailable-dates/{dateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	dateID, err := handlers.PathInt64(r, "dateId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.RemoveUnavailableDate(r.Context(), &models.RemoveUnavailableDateRequest{
		ActorID:    userID,
		ProviderID: providerID,
		DateID:     dateID,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrUnavailableDateNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /providers/{id}/unavailable-dates/{dateId} - Access denied: provider_id=%d, user_id=%d",
				providerID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("DELETE /providers/{id}/unavailable-dates/{dateId} - Failed: provider_id=%d, date_id=%d, error=%v",
				providerID, dateID, err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	h.logger.Info("DELETE /providers/{id}/unavailable-dates/{dateId} - Date unblocked: provider_id=%d, date_id=%d",
		providerID, dateID)
	w.WriteHeader(http.StatusNoContent)
}
