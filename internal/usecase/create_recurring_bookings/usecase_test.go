package create_recurring_bookings

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

// fakeCreator возвращает ошибку для заданных дат, остальные создает
type fakeCreator struct {
	failOn   map[string]error
	requests []*create_booking.Request
	nextID   int64
}

func (c *fakeCreator) Execute(ctx context.Context, req *create_booking.Request) (*models.BookingResponse, error) {
	c.requests = append(c.requests, req)
	if err, ok := c.failOn[req.Date.Format(domain.DateFormat)]; ok {
		return nil, err
	}
	c.nextID++
	return &models.BookingResponse{
		ID:                 c.nextID,
		ScheduledDate:      req.Date.Format(domain.DateFormat),
		ScheduledTime:      req.StartTime.String(),
		RecurrenceGroup:    req.RecurrenceGroup,
		RecurrenceSequence: req.RecurrenceSequence,
	}, nil
}

func newTestUseCase(creator *fakeCreator) *UseCase {
	return NewUseCase(creator, nil, logger.NewNop()).
		WithGroupIDGenerator(func() string { return "group-1" })
}

func request(date time.Time, recurrence domain.RecurrenceType, n int) *Request {
	return &Request{
		ClientID:       1,
		ProviderID:     2,
		ServiceID:      5,
		Date:           date,
		StartTime:      "10:00",
		RecurrenceType: recurrence,
		Occurrences:    n,
	}
}

func dates(resp *Response) []string {
	out := make([]string, 0, len(resp.Bookings))
	for _, b := range resp.Bookings {
		out = append(out, b.ScheduledDate)
	}
	return out
}

func TestExecute_WeeklyFour(t *testing.T) {
	creator := &fakeCreator{}
	uc := newTestUseCase(creator)

	resp, err := uc.Execute(context.Background(), request(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), domain.RecurrenceWeekly, 4))
	require.NoError(t, err)

	assert.Equal(t, "group-1", resp.RecurrenceGroup)
	assert.Equal(t, []string{"2025-03-11", "2025-03-18", "2025-03-25", "2025-04-01"}, dates(resp))
	for i, b := range resp.Bookings {
		require.NotNil(t, b.RecurrenceGroup)
		assert.Equal(t, "group-1", *b.RecurrenceGroup)
		assert.Equal(t, i+1, *b.RecurrenceSequence)
	}
	assert.Empty(t, resp.Skipped)
}

func TestExecute_MonthlyClampsToMonthEnd(t *testing.T) {
	creator := &fakeCreator{}
	uc := newTestUseCase(creator)

	resp, err := uc.Execute(context.Background(), request(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), domain.RecurrenceMonthly, 3))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-31", "2025-02-28", "2025-03-31"}, dates(resp))
}

func TestExecute_Biweekly(t *testing.T) {
	creator := &fakeCreator{}
	uc := newTestUseCase(creator)

	resp, err := uc.Execute(context.Background(), request(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), domain.RecurrenceBiweekly, 3))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-11", "2025-03-25", "2025-04-08"}, dates(resp))
}

func TestExecute_SkipsConflicts(t *testing.T) {
	creator := &fakeCreator{failOn: map[string]error{
		"2025-03-18": create_booking.ErrSlotNotAvailable,
	}}
	uc := newTestUseCase(creator)

	resp, err := uc.Execute(context.Background(), request(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), domain.RecurrenceWeekly, 3))
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-03-11", "2025-03-25"}, dates(resp))
	// номера вхождений сохраняют пропуск
	assert.Equal(t, 1, *resp.Bookings[0].RecurrenceSequence)
	assert.Equal(t, 3, *resp.Bookings[1].RecurrenceSequence)

	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, 2, resp.Skipped[0].Sequence)
	assert.Equal(t, "2025-03-18", resp.Skipped[0].Date)
}

func TestExecute_AllConflicting(t *testing.T) {
	creator := &fakeCreator{failOn: map[string]error{
		"2025-03-11": create_booking.ErrProviderUnavailable,
		"2025-03-18": create_booking.ErrOutsideWorkingHours,
	}}
	uc := newTestUseCase(creator)

	resp, err := uc.Execute(context.Background(), request(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), domain.RecurrenceWeekly, 2))
	assert.ErrorIs(t, err, ErrNoOccurrencesCreated)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, resp.Skipped, 2)
}

func TestExecute_AbortsOnOtherErrors(t *testing.T) {
	dbErr := fmt.Errorf("%w: connection lost", create_booking.ErrInternal)
	creator := &fakeCreator{failOn: map[string]error{
		"2025-03-18": dbErr,
	}}
	uc := newTestUseCase(creator)

	resp, err := uc.Execute(context.Background(), request(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), domain.RecurrenceWeekly, 4))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPersistence))

	// первое вхождение создано, остальные не пытались
	assert.Equal(t, []string{"2025-03-11"}, dates(resp))
	assert.Len(t, creator.requests, 2)
}

func TestExecute_Validation(t *testing.T) {
	creator := &fakeCreator{}
	uc := newTestUseCase(creator)
	date := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	for _, req := range []*Request{
		request(date, domain.RecurrenceWeekly, 0),
		request(date, domain.RecurrenceWeekly, 53),
		request(date, domain.RecurrenceType("daily"), 3),
		request(time.Time{}, domain.RecurrenceWeekly, 3),
	} {
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	assert.Empty(t, creator.requests)
}
