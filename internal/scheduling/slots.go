package scheduling

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// GenerateSlots генерирует слоты провайдера на дату
//
// 1. Заблокированная дата → пустой список
// 2. Каждый рабочий интервал дня недели делится на слоты длиной intervalMinutes
// от начала интервала. Хвост короче слота отбрасывается
// 3. Слот недоступен, если пересекается с активным бронированием
// 4. Результат отсортирован по времени начала, дубликаты (пересекающиеся правила) схлопнуты
//
// Нет правил на этот день недели → пустой список, не ошибка
// Прошедшие даты не фильтруются, это делает вызывающий код
func GenerateSlots(
	date time.Time,
	rules []*domain.AvailabilityRule,
	blackout bool,
	bookings []*domain.Booking,
	intervalMinutes int,
) ([]domain.TimeSlot, error) {
	if intervalMinutes <= 0 {
		return nil, ErrInvalidInterval
	}
	if blackout {
		return []domain.TimeSlot{}, nil
	}

	weekday := date.Weekday()
	seen := make(map[int]struct{})
	slots := make([]domain.TimeSlot, 0)

	for _, rule := range rules {
		if rule.Weekday != weekday {
			continue
		}

		closeAt := rule.EndTime.Minutes()
		for startMin := rule.StartTime.Minutes(); startMin+intervalMinutes <= closeAt; startMin += intervalMinutes {
			if _, ok := seen[startMin]; ok {
				continue
			}
			seen[startMin] = struct{}{}

			start, err := types.FromMinutes(startMin)
			if err != nil {
				return nil, err
			}
			end, err := types.FromMinutes(startMin + intervalMinutes)
			if err != nil {
				return nil, err
			}

			conflict, err := FindConflict(bookings, start, intervalMinutes, 0)
			if err != nil {
				return nil, err
			}

			slots = append(slots, domain.TimeSlot{
				StartTime:   start,
				EndTime:     end,
				IsAvailable: conflict == nil,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots, nil
}

// FilterByNotice убирает слоты, начинающиеся раньше now + noticeMinutes
// Применяется только если date - сегодняшний день
func FilterByNotice(slots []domain.TimeSlot, date, now time.Time, noticeMinutes int) []domain.TimeSlot {
	if !domain.IsSameDay(date, now) {
		return slots
	}

	minAllowed := now.Hour()*60 + now.Minute() + noticeMinutes
	filtered := make([]domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.StartTime.Minutes() >= minAllowed {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}
