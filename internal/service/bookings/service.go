package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
// Переходы статусов, отмена с возвратом средств, запись оплаты и чтение
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	payments     PaymentGateway
	publisher    EventPublisher
	metrics      MetricsRecorder
	refundPolicy RefundPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
// metrics может быть nil
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	payments PaymentGateway,
	publisher EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		payments:     payments,
		publisher:    publisher,
		metrics:      metrics,
		refundPolicy: FullRefundPolicy{},
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// WithRefundPolicy заменяет политику возврата средств
func (s *Service) WithRefundPolicy(policy RefundPolicy) *Service {
	s.refundPolicy = policy
	return s
}

// WithTimeProvider заменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
// Видеть бронирование могут только его клиент и провайдер
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !booking.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу и дате
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetClientBookings: invalid filter for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetProviderBookings получает бронирования провайдера с фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отмененных бронирований
// Доступно только самому провайдеру
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetProviderBookings: fetching bookings for provider=%d, actor=%d", req.ProviderID, req.ActorID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if req.ActorID != req.ProviderID {
		s.logger.Warn("GetProviderBookings: user=%d is not provider=%d", req.ActorID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderBookings: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetProviderBookings: fetched %d bookings for provider=%d", len(bookings), req.ProviderID)
	return models.FromDomainBookingList(bookings), nil
}

// GetRecurrenceGroup получает все бронирования серии
// Серия видна только ее клиенту и провайдеру
func (s *Service) GetRecurrenceGroup(ctx context.Context, group string, userID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetRecurrenceGroup: fetching group=%s for user=%d", group, userID)

	bookings, err := s.bookingRepo.GetByRecurrenceGroup(ctx, group)
	if err != nil {
		s.logger.Error("GetRecurrenceGroup: repository error for group=%s: %v", group, err)
		return nil, fmt.Errorf("%w: GetRecurrenceGroup - repository error: %w", ErrInternal, err)
	}

	if len(bookings) == 0 {
		return nil, fmt.Errorf("%w: recurrence group %s", ErrBookingNotFound, group)
	}
	if !bookings[0].IsParticipant(userID) {
		s.logger.Warn("GetRecurrenceGroup: access denied for user=%d to group=%s", userID, group)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает бронирование: pending → confirmed
// Доступно только провайдеру
func (s *Service) Confirm(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	booking, err := s.transition(ctx, "Confirm", id, actorID,
		[]domain.BookingStatus{domain.StatusPending}, domain.StatusConfirmed)
	s.record("confirm", err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventBookingConfirmed, booking)
	return models.FromDomainBooking(booking), nil
}

// Complete завершает бронирование: confirmed → completed
// Доступно только провайдеру
func (s *Service) Complete(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	booking, err := s.transition(ctx, "Complete", id, actorID,
		[]domain.BookingStatus{domain.StatusConfirmed}, domain.StatusCompleted)
	s.record("complete", err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventBookingCompleted, booking)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование: pending|confirmed → cancelled
// Отменить может клиент или провайдер. Если бронирование оплачено, сначала выполняется
// возврат средств по политике возврата; при ошибке шлюза бронирование остается активным.
// Строка бронирования заблокирована на время возврата, поэтому возврат выполняется не более одного раза
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", id, req.ActorID)

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var cancelled *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// Блокируем строку (FOR UPDATE)
		booking, err := s.getBooking(ctx, "Cancel", id)
		if err != nil {
			return err
		}

		if !booking.IsParticipant(req.ActorID) {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.ActorID, id)
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", id, booking.Status)
			return fmt.Errorf("%w: cannot cancel booking in status %s", ErrInvalidTransition, booking.Status)
		}

		now := s.timeProvider.Now()
		params := bookingRepo.CancelParams{
			Reason:      req.Reason,
			CancelledAt: now,
		}

		if amount := s.refundPolicy.RefundAmount(booking, now); booking.IsPaid() && amount > 0 {
			if booking.PaymentReference == nil || *booking.PaymentReference == "" {
				s.logger.Error("Cancel: paid booking id=%d has no payment reference", id)
				return ErrMissingPaymentReference
			}

			refund, err := s.payments.Refund(ctx, *booking.PaymentReference, amount, refundIdempotencyKey(id))
			if err != nil {
				s.logger.Error("Cancel: refund failed for booking id=%d: %v", id, err)
				return fmt.Errorf("%w: %w", ErrRefundFailed, err)
			}

			params.RefundAmount = &refund.Amount
			params.RefundID = &refund.ID
			params.PaymentStatus = domain.PaymentRefunded
		}

		if err := s.bookingRepo.Cancel(ctx, id, params); err != nil {
			if params.RefundID != nil {
				// Деньги уже возвращены, а бронирование остается активным до сверки
				s.logger.Error("Cancel: refund %s (amount=%.2f) issued but booking id=%d not cancelled, needs reconciliation: %v",
					*params.RefundID, *params.RefundAmount, id, err)
			}
			if errors.Is(err, bookingRepo.ErrNoRowsUpdated) {
				return fmt.Errorf("%w: booking id=%d changed concurrently", ErrInvalidTransition, id)
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		booking.CancellationReason = params.Reason
		booking.CancelledAt = &now
		booking.RefundAmount = params.RefundAmount
		booking.RefundID = params.RefundID
		if params.PaymentStatus != "" {
			booking.PaymentStatus = params.PaymentStatus
		}
		cancelled = booking
		return nil
	})
	s.record("cancel", err)
	if err != nil {
		return nil, err
	}
	if cancelled.RefundAmount != nil {
		s.recordRefund(*cancelled.RefundAmount)
	}

	s.logger.Info("Cancel: booking id=%d cancelled, refund=%v", id, cancelled.RefundAmount != nil)
	s.publish(ctx, domain.EventBookingCancelled, cancelled)
	return models.FromDomainBooking(cancelled), nil
}

// RecordPayment отмечает бронирование оплаченным
// Вызывается платежной интеграцией, поэтому проверки участника нет
func (s *Service) RecordPayment(ctx context.Context, id int64, req *models.RecordPaymentRequest) (*models.BookingResponse, error) {
	s.logger.Info("RecordPayment: booking id=%d, reference=%s", id, req.PaymentReference)

	if strings.TrimSpace(req.PaymentReference) == "" {
		return nil, fmt.Errorf("%w: paymentReference is required", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "RecordPayment", id)
	if err != nil {
		s.record("record_payment", err)
		return nil, err
	}

	if !booking.CanRecordPayment() || !booking.IsActive() {
		s.logger.Warn("RecordPayment: booking id=%d has payment_status=%s, status=%s", id, booking.PaymentStatus, booking.Status)
		s.record("record_payment", ErrPaymentNotAllowed)
		return nil, ErrPaymentNotAllowed
	}

	if err := s.bookingRepo.MarkPaid(ctx, id, req.PaymentReference); err != nil {
		if errors.Is(err, bookingRepo.ErrNoRowsUpdated) {
			err = ErrPaymentNotAllowed
		} else {
			s.logger.Error("RecordPayment: repository error for booking id=%d: %v", id, err)
			err = fmt.Errorf("%w: RecordPayment - repository error: %w", ErrInternal, err)
		}
		s.record("record_payment", err)
		return nil, err
	}
	s.record("record_payment", nil)

	booking.PaymentStatus = domain.PaymentPaid
	booking.PaymentReference = &req.PaymentReference
	return models.FromDomainBooking(booking), nil
}

// Вспомогательные методы

// transition выполняет переход статуса провайдером
// Проверка текущего статуса делается и здесь (для понятной ошибки), и в самом UPDATE
func (s *Service) transition(
	ctx context.Context,
	op string,
	id, actorID int64,
	from []domain.BookingStatus,
	to domain.BookingStatus,
) (*domain.Booking, error) {
	s.logger.Info("%s: booking id=%d by user=%d", op, id, actorID)

	booking, err := s.getBooking(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if booking.ProviderID != actorID {
		s.logger.Warn("%s: user=%d is not provider of booking id=%d", op, actorID, id)
		return nil, ErrAccessDenied
	}

	if !statusIn(booking.Status, from) {
		s.logger.Warn("%s: booking id=%d has status=%s", op, id, booking.Status)
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, booking.Status, to)
	}

	if err := s.bookingRepo.TransitionStatus(ctx, id, from, to); err != nil {
		if errors.Is(err, bookingRepo.ErrNoRowsUpdated) {
			// Статус изменился между чтением и записью
			s.logger.Warn("%s: booking id=%d changed concurrently", op, id)
			return nil, fmt.Errorf("%w: booking id=%d changed concurrently", ErrInvalidTransition, id)
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	booking.Status = to
	s.logger.Info("%s: booking id=%d is now %s", op, id, to)
	return booking, nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}

// publish отправляет событие после фиксации изменений
// Ошибка канала уведомлений не влияет на результат операции
func (s *Service) publish(ctx context.Context, eventType domain.EventType, booking *domain.Booking) {
	if s.publisher == nil {
		return
	}
	event := domain.NewBookingEvent(eventType, booking, s.timeProvider.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish: %s for booking id=%d not delivered: %v", eventType, booking.ID, err)
	}
}

func (s *Service) record(op string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordBookingOperation(op, domain.ResultLabel(err))
}

func (s *Service) recordRefund(amount float64) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordRefund(amount)
}

func refundIdempotencyKey(bookingID int64) string {
	return fmt.Sprintf("booking-%d-refund", bookingID)
}

func statusIn(status domain.BookingStatus, statuses []domain.BookingStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
