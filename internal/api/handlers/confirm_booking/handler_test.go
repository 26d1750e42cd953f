package confirm_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Confirm(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		result *models.BookingResponse
		err    error
		status int
	}{
		{"confirmed", &models.BookingResponse{ID: 5, Status: "confirmed"}, nil, http.StatusOK},
		{"already confirmed", nil, bookings.ErrInvalidTransition, http.StatusConflict},
		{"not the provider", nil, bookings.ErrAccessDenied, http.StatusForbidden},
		{"missing", nil, bookings.ErrBookingNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBookingService)
			svc.On("Confirm", mock.Anything, int64(5), int64(2)).Return(tt.result, tt.err)

			req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/5/confirm", nil)
			req = mux.SetURLVars(req, map[string]string{"bookingId": "5"})
			req = req.WithContext(middleware.WithUserID(req.Context(), 2))
			rec := httptest.NewRecorder()

			NewHandler(svc, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
