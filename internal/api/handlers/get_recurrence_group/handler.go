package get_recurrence_group

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidGroup  = "некорректный идентификатор серии"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "серия бронирований не найдена"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/recurring/{groupId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	group := mux.Vars(r)["groupId"]
	if _, err := uuid.Parse(group); err != nil {
		h.logger.Warn("GET /bookings/recurring/{groupId} - Invalid group: %q", group)
		handlers.RespondBadRequest(w, msgInvalidGroup)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetRecurrenceGroup(r.Context(), group, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/recurring/{groupId} - Access denied: group=%s, user_id=%d", group, userID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("GET /bookings/recurring/{groupId} - Failed: group=%s, error=%v", group, err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	h.logger.Info("GET /bookings/recurring/{groupId} - Series retrieved: group=%s, count=%d", group, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
