package add_unavailable_date

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
)

const (
	msgInvalidProviderID  = "некорректный ID провайдера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

// AddUnavailableDateRequest HTTP request model
type AddUnavailableDateRequest struct {
	Date   string  `json:"date" validate:"required"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=255"`
}

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

// Handle POST /api/v1/providers/{providerId}/unavailable-dates
// Повторное добавление той же даты обновляет причину
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddUnavailableDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{id}/unavailable-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.AddUnavailableDate(r.Context(), &models.AddUnavailableDateRequest{
		ActorID:    userID,
		ProviderID: providerID,
		Date:       date,
		Reason:     req.Reason,
	})
	if err != nil {
		if errors.Is(err, availability.ErrAccessDenied) {
			h.logger.Warn("POST /providers/{id}/unavailable-dates - Access denied: provider_id=%d, user_id=%d",
				providerID, userID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		if handlers.IsServerError(err) {
			h.logger.Error("POST /providers/{id}/unavailable-dates - Failed: provider_id=%d, error=%v", providerID, err)
		}
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("POST /providers/{id}/unavailable-dates - Date blocked: provider_id=%d, date=%s", providerID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
