package create_recurring_bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	createRecurring "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_recurring_bookings"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createRecurring.Request) (*createRecurring.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createRecurring.Response), args.Error(1)
}

func serve(uc *MockUseCase, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/recurring", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 4))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

const body = `{"providerId":2,"serviceId":5,"date":"2025-10-13","startTime":"10:00","recurrenceType":"weekly","occurrences":4}`

func TestHandle_Created(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createRecurring.Request) bool {
		return req.ClientID == 4 && req.RecurrenceType == domain.RecurrenceWeekly && req.Occurrences == 4
	})).Return(&createRecurring.Response{
		RecurrenceGroup: "g-1",
		RecurrenceType:  "weekly",
		Bookings:        []models.BookingResponse{{ID: 1}, {ID: 2}, {ID: 4}},
		Skipped:         []createRecurring.SkippedOccurrence{{Sequence: 3, Date: "2025-10-27", Reason: "conflict"}},
	}, nil)

	rec := serve(uc, body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"recurrenceGroup":"g-1"`)
	assert.Contains(t, rec.Body.String(), `"sequence":3`)
	uc.AssertExpectations(t)
}

func TestHandle_AllConflict(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, createRecurring.ErrNoOccurrencesCreated)

	rec := serve(uc, body)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := new(MockUseCase)

	for _, b := range []string{
		`{"providerId":2,"serviceId":5,"date":"2025-10-13","startTime":"10:00","recurrenceType":"daily","occurrences":4}`,
		`{"providerId":2,"serviceId":5,"date":"2025-10-13","startTime":"10:00","recurrenceType":"weekly","occurrences":53}`,
		`{"providerId":2,"serviceId":5,"date":"2025-10-13","startTime":"25:00","recurrenceType":"weekly","occurrences":2}`,
	} {
		rec := serve(uc, b)
		assert.Equal(t, http.StatusBadRequest, rec.Code, b)
	}
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_AbortedSeriesKeepsCreatedBookings(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		abortedStatus int
	}{
		{"advance limit", create_booking.ErrDateTooFarInFuture, http.StatusBadRequest},
		{"store failure", create_booking.ErrInternal, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(&createRecurring.Response{
				RecurrenceGroup: "g-1",
				RecurrenceType:  "weekly",
				Bookings:        []models.BookingResponse{{ID: 1}, {ID: 2}},
				Skipped:         []createRecurring.SkippedOccurrence{},
			}, fmt.Errorf("occurrence #3 on 2025-10-27: %w", tt.err))

			rec := serve(uc, body)

			require.Equal(t, http.StatusMultiStatus, rec.Code)

			var resp struct {
				RecurrenceGroup string                   `json:"recurrenceGroup"`
				Bookings        []models.BookingResponse `json:"bookings"`
				Error           string                   `json:"error"`
				AbortedStatus   int                      `json:"abortedStatus"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "g-1", resp.RecurrenceGroup)
			assert.Len(t, resp.Bookings, 2)
			assert.Equal(t, tt.abortedStatus, resp.AbortedStatus)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandle_FailureWithoutBookings(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(&createRecurring.Response{
		RecurrenceGroup: "g-2",
		Bookings:        []models.BookingResponse{},
	}, fmt.Errorf("occurrence #1 on 2025-10-13: %w", create_booking.ErrDateTooFarInFuture))

	rec := serve(uc, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
