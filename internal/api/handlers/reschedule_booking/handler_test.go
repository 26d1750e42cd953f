package reschedule_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *rescheduleBooking.Request) (*models.BookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func serve(uc *MockUseCase, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/9/reschedule", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "9"})
	req = req.WithContext(middleware.WithUserID(req.Context(), 1))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Rescheduled(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *rescheduleBooking.Request) bool {
		return req.ActorID == 1 && req.BookingID == 9 && req.StartTime.String() == "14:00"
	})).Return(&models.BookingResponse{ID: 9, ScheduledDate: "2025-10-14", ScheduledTime: "14:00"}, nil)

	rec := serve(uc, `{"date":"2025-10-14","startTime":"14:00"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{rescheduleBooking.ErrSlotNotAvailable, http.StatusConflict},
		{rescheduleBooking.ErrCannotReschedule, http.StatusConflict},
		{rescheduleBooking.ErrOutsideWorkingHours, http.StatusConflict},
		{rescheduleBooking.ErrAccessDenied, http.StatusForbidden},
		{rescheduleBooking.ErrTooLateToBook, http.StatusBadRequest},
	}

	for _, tt := range tests {
		uc := new(MockUseCase)
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

		rec := serve(uc, `{"date":"2025-10-14","startTime":"14:00"}`)
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
	}

	rec := serve(new(MockUseCase), `{"date":"2025/10/14","startTime":"14:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
