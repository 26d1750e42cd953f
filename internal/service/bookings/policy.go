package bookings

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// FullRefundPolicy возвращает полную стоимость оплаченного бронирования
type FullRefundPolicy struct{}

func (FullRefundPolicy) RefundAmount(booking *domain.Booking, _ time.Time) float64 {
	if !booking.IsPaid() {
		return 0
	}
	return booking.Price
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
