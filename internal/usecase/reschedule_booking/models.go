package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	ActorID   int64            // клиент или провайдер бронирования
	BookingID int64            // ID бронирования
	Date      time.Time        // Новая дата
	StartTime types.TimeString // Новое время начала
}
