package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProviderID int64     // ID провайдера
	ServiceID  *int64    // ID услуги (опционально, влияет на выбор конфигурации)
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	ProviderID      int64     // ID провайдера
	ServiceID       *int64    // ID услуги
	IntervalMinutes int       // Длина слота
	Slots           []Slot    // Слоты по возрастанию времени начала
}

// Slot модель временного слота
type Slot struct {
	StartTime   types.TimeString // Время начала слота (например, "10:00")
	EndTime     types.TimeString // Время окончания слота
	IsAvailable bool             // false, если слот пересекается с активным бронированием
}
