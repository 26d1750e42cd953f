package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// Booking is a reservation of a provider's time window by a client
type Booking struct {
	ID              int64
	ClientID        int64
	ProviderID      int64
	ServiceID       int64
	ScheduledDate   time.Time
	ScheduledTime   types.TimeString
	DurationMinutes int
	Status          BookingStatus

	PaymentStatus    PaymentStatus
	PaymentReference *string
	Price            float64 // denormalized from the catalog at creation time

	RecurrenceGroup    *string
	RecurrenceSequence *int

	CancellationReason *string
	CancelledAt        *time.Time
	RefundAmount       *float64
	RefundID           *string

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds its time window
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the provider can confirm the booking
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCompleted returns true if the booking can be marked completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking can be moved to another window
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanRecordPayment returns true if a payment can still be attached
func (b *Booking) CanRecordPayment() bool {
	return b.PaymentStatus == PaymentUnpaid || b.PaymentStatus == PaymentPending
}

// IsPaid returns true if the client has paid for the booking
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// EndTime returns the end of the booked window
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.ScheduledTime.AddMinutes(b.DurationMinutes)
}

// IsParticipant returns true if the user is the client or the provider of the booking
func (b *Booking) IsParticipant(userID int64) bool {
	return b.ClientID == userID || b.ProviderID == userID
}

// ProviderBookingsFilter фильтр для получения бронирований провайдера
type ProviderBookingsFilter struct {
	ProviderID       int64          // Обязательный параметр
	StartDate        *time.Time     // Начало периода (включительно)
	EndDate          *time.Time     // Конец периода (включительно)
	Status           *BookingStatus // Фильтр по статусу
	IncludeCancelled bool
}

// ClientBookingsFilter фильтр для истории бронирований клиента
type ClientBookingsFilter struct {
	ClientID int64
	Status   *BookingStatus
	FromDate *time.Time
}

// ValidBookingStatuses all known booking statuses
var ValidBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// ActiveStatuses statuses that occupy a time window
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// ParseBookingStatus validates a raw status string
func ParseBookingStatus(s string) (BookingStatus, error) {
	for _, status := range ValidBookingStatuses {
		if BookingStatus(s) == status {
			return status, nil
		}
	}
	return "", ErrInvalidBookingStatus
}
