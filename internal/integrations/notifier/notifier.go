package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// DefaultQueue список Redis, из которого события забирает сервис уведомлений
const DefaultQueue = "booking_events"

// Notifier публикует события жизненного цикла бронирований в очередь Redis
type Notifier struct {
	redis redis.Cmdable
	queue string
	log   Logger
}

// New создает notifier поверх готового клиента Redis
func New(rdb redis.Cmdable, queue string, log Logger) *Notifier {
	if queue == "" {
		queue = DefaultQueue
	}
	return &Notifier{
		redis: rdb,
		queue: queue,
		log:   log,
	}
}

// Publish кладет событие в очередь (LPUSH JSON)
// Доставку выполняет внешний сервис уведомлений
func (n *Notifier) Publish(ctx context.Context, event domain.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshalEvent, err)
	}

	if err := n.redis.LPush(ctx, n.queue, string(data)).Err(); err != nil {
		n.log.Error("Failed to publish %s for booking_id=%d: %v", event.Type, event.BookingID, err)
		return fmt.Errorf("%w: %s booking_id=%d: %v", ErrPublish, event.Type, event.BookingID, err)
	}

	n.log.Info("Event published: %s booking_id=%d", event.Type, event.BookingID)
	return nil
}
