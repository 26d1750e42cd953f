package record_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgPaymentNotAllowed  = "оплата не может быть записана для этого бронирования"
)

// RecordPaymentRequest HTTP request model
type RecordPaymentRequest struct {
	PaymentReference string `json:"paymentReference" validate:"required,max=255"`
}

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

// Handle POST /internal/bookings/{bookingId}/payment
// Вызывается платежным контуром после успешного списания
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /internal/bookings/{id}/payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RecordPayment(r.Context(), bookingID, &models.RecordPaymentRequest{
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrPaymentNotAllowed):
			h.logger.Warn("POST /internal/bookings/{id}/payment - Not allowed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgPaymentNotAllowed)

		default:
			h.logger.Error("POST /internal/bookings/{id}/payment - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	h.logger.Info("POST /internal/bookings/{id}/payment - Payment recorded: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
