package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// TimeRangeDTO интервал рабочего времени
type TimeRangeDTO struct {
	Start string `json:"start" validate:"required"` // "09:00"
	End   string `json:"end" validate:"required"`   // "18:00", допустимо "24:00"
}

// ToDomain парсит интервал
func (r TimeRangeDTO) ToDomain() (domain.TimeRange, error) {
	start, err := types.NewTimeStringFromString(r.Start)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("start: %w", err)
	}
	end, err := types.NewTimeStringFromString(r.End)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("end: %w", err)
	}
	return domain.TimeRange{Start: start, End: end}, nil
}

// SetWeekdayRulesRequest запрос на замену расписания одного дня недели
// Пустой список Ranges делает день нерабочим
type SetWeekdayRulesRequest struct {
	ActorID    int64          `json:"actorId"`
	ProviderID int64          `json:"providerId"`
	Weekday    int            `json:"weekday"` // 0 = воскресенье .. 6 = суббота
	Ranges     []TimeRangeDTO `json:"ranges"`
}

// AddUnavailableDateRequest запрос на добавление нерабочего дня
type AddUnavailableDateRequest struct {
	ActorID    int64     `json:"actorId"`
	ProviderID int64     `json:"providerId"`
	Date       time.Time `json:"date"`
	Reason     *string   `json:"reason,omitempty"`
}

// RemoveUnavailableDateRequest запрос на удаление нерабочего дня
type RemoveUnavailableDateRequest struct {
	ActorID    int64 `json:"actorId"`
	ProviderID int64 `json:"providerId"`
	DateID     int64 `json:"dateId"`
}

// ListUnavailableDatesRequest запрос списка нерабочих дней
type ListUnavailableDatesRequest struct {
	ProviderID int64      `json:"providerId"`
	FromDate   *time.Time `json:"fromDate,omitempty"`
}

// Response модели

// DayRulesResponse расписание одного дня недели
type DayRulesResponse struct {
	Weekday int            `json:"weekday"`
	Name    string         `json:"name"`
	Ranges  []TimeRangeDTO `json:"ranges"`
}

// WeeklyRulesResponse недельное расписание провайдера, всегда 7 дней
type WeeklyRulesResponse struct {
	ProviderID int64              `json:"providerId"`
	Days       []DayRulesResponse `json:"days"`
}

// UnavailableDateResponse нерабочий день
type UnavailableDateResponse struct {
	ID         int64     `json:"id"`
	ProviderID int64     `json:"providerId"`
	Date       string    `json:"date"` // "2025-10-15"
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UnavailableDateListResponse список нерабочих дней
type UnavailableDateListResponse struct {
	Dates []UnavailableDateResponse `json:"dates"`
}

// Методы конвертации

// FromDomainRules раскладывает правила по дням недели
func FromDomainRules(providerID int64, rules []*domain.AvailabilityRule) *WeeklyRulesResponse {
	resp := &WeeklyRulesResponse{
		ProviderID: providerID,
		Days:       make([]DayRulesResponse, 7),
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		resp.Days[day] = DayRulesResponse{
			Weekday: int(day),
			Name:    day.String(),
			Ranges:  []TimeRangeDTO{},
		}
	}

	for _, rule := range rules {
		day := &resp.Days[rule.Weekday]
		day.Ranges = append(day.Ranges, TimeRangeDTO{
			Start: rule.StartTime.String(),
			End:   rule.EndTime.String(),
		})
	}

	for i := range resp.Days {
		ranges := resp.Days[i].Ranges
		sort.Slice(ranges, func(a, b int) bool { return ranges[a].Start < ranges[b].Start })
	}

	return resp
}

// FromDomainUnavailableDate конвертирует domain модель в DTO
func FromDomainUnavailableDate(d *domain.UnavailableDate) *UnavailableDateResponse {
	if d == nil {
		return nil
	}
	return &UnavailableDateResponse{
		ID:         d.ID,
		ProviderID: d.ProviderID,
		Date:       d.Date.Format(domain.DateFormat),
		Reason:     d.Reason,
		CreatedAt:  d.CreatedAt,
	}
}

// FromDomainUnavailableDateList конвертирует список domain моделей в DTO
func FromDomainUnavailableDateList(dates []*domain.UnavailableDate) *UnavailableDateListResponse {
	resp := &UnavailableDateListResponse{
		Dates: make([]UnavailableDateResponse, 0, len(dates)),
	}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, *FromDomainUnavailableDate(d))
	}
	return resp
}
