package cancel_booking

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
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func serve(h *Handler, bookingID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/cancel", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_CancelWithReason(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("Cancel", mock.Anything, int64(3), mock.MatchedBy(func(req *models.CancelBookingRequest) bool {
		return req.ActorID == 7 && req.Reason != nil && *req.Reason == "sick"
	})).Return(&models.BookingResponse{ID: 3, Status: "cancelled"}, nil)

	rec := serve(NewHandler(svc, logger.NewNop()), "3", `{"cancellationReason":"  sick "}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
	svc.AssertExpectations(t)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("Cancel", mock.Anything, int64(3), &models.CancelBookingRequest{ActorID: 7}).
		Return(&models.BookingResponse{ID: 3}, nil)

	rec := serve(NewHandler(svc, logger.NewNop()), "3", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{bookings.ErrBookingNotFound, http.StatusNotFound},
		{bookings.ErrAccessDenied, http.StatusForbidden},
		{bookings.ErrInvalidTransition, http.StatusConflict},
		{bookings.ErrRefundFailed, http.StatusBadGateway},
		{bookings.ErrInternal, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		svc := new(MockBookingService)
		svc.On("Cancel", mock.Anything, int64(3), mock.Anything).Return(nil, tt.err)

		rec := serve(NewHandler(svc, logger.NewNop()), "3", "")
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
	}

	rec := serve(NewHandler(new(MockBookingService), logger.NewNop()), "abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
