package create_recurring_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	createRecurring "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_recurring_bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректная дата, время или тип повторения"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgAllConflict        = "все даты серии заняты, ни одно бронирование не создано"
	msgSeriesAborted      = "создание серии прервано, созданные бронирования сохранены"
)

type Handler struct {
	useCase CreateRecurringBookingsUseCase
	logger  Logger
}

func NewHandler(useCase CreateRecurringBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/recurring
// Занятые даты серии пропускаются и возвращаются в поле skipped
// 207 - серия прервана ошибкой, созданные до нее бронирования в теле ответа
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/recurring - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRecurringBookingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings/recurring - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil && result != nil && len(result.Bookings) > 0 {
		// Серия прервана после части вхождений: возвращаем группу и созданные бронирования
		status := handlers.StatusForError(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("POST /bookings/recurring - Series aborted: group=%s, created=%d, error=%v",
				result.RecurrenceGroup, len(result.Bookings), err)
		} else {
			h.logger.Warn("POST /bookings/recurring - Series aborted: group=%s, created=%d, error=%v",
				result.RecurrenceGroup, len(result.Bookings), err)
		}
		handlers.RespondJSON(w, http.StatusMultiStatus, PartialSeriesResponse{
			Response:      result,
			Error:         msgSeriesAborted,
			AbortedStatus: status,
		})
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, createRecurring.ErrNoOccurrencesCreated):
			h.logger.Warn("POST /bookings/recurring - All occurrences conflict: client_id=%d, provider_id=%d",
				clientID, req.ProviderID)
			handlers.RespondConflict(w, msgAllConflict)

		default:
			if handlers.IsServerError(err) {
				h.logger.Error("POST /bookings/recurring - Failed: client_id=%d, provider_id=%d, error=%v",
					clientID, req.ProviderID, err)
			} else {
				h.logger.Warn("POST /bookings/recurring - Rejected: client_id=%d, error=%v", clientID, err)
			}
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	h.logger.Info("POST /bookings/recurring - Series created: group=%s, created=%d, skipped=%d",
		result.RecurrenceGroup, len(result.Bookings), len(result.Skipped))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
