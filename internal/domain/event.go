package domain

import "time"

// EventType is the kind of a booking lifecycle notification
type EventType string

const (
	EventBookingCreated     EventType = "booking.created"
	EventBookingConfirmed   EventType = "booking.confirmed"
	EventBookingCompleted   EventType = "booking.completed"
	EventBookingCancelled   EventType = "booking.cancelled"
	EventBookingRescheduled EventType = "booking.rescheduled"
)

// BookingEvent is published to the notification channel after a lifecycle change
type BookingEvent struct {
	Type            EventType `json:"type"`
	BookingID       int64     `json:"bookingId"`
	ClientID        int64     `json:"clientId"`
	ProviderID      int64     `json:"providerId"`
	ServiceID       int64     `json:"serviceId"`
	ScheduledDate   string    `json:"scheduledDate"`
	ScheduledTime   string    `json:"scheduledTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	RecurrenceGroup *string   `json:"recurrenceGroup,omitempty"`
	RefundAmount    *float64  `json:"refundAmount,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// NewBookingEvent builds an event snapshot of the booking
func NewBookingEvent(eventType EventType, b *Booking, now time.Time) BookingEvent {
	return BookingEvent{
		Type:            eventType,
		BookingID:       b.ID,
		ClientID:        b.ClientID,
		ProviderID:      b.ProviderID,
		ServiceID:       b.ServiceID,
		ScheduledDate:   b.ScheduledDate.Format(DateFormat),
		ScheduledTime:   b.ScheduledTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		RecurrenceGroup: b.RecurrenceGroup,
		RefundAmount:    b.RefundAmount,
		OccurredAt:      now.UTC(),
	}
}
