package create_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*models.BookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func serve(h *Handler, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

const validBody = `{"providerId":2,"serviceId":5,"date":"2025-10-13","startTime":"09:30"}`

func TestHandle_Created(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.ClientID == 7 && req.ProviderID == 2 && req.StartTime.String() == "09:30"
	})).Return(&models.BookingResponse{ID: 11, Status: "pending"}, nil)

	rec := serve(NewHandler(uc, logger.NewNop()), validBody, 7)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":11`)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"slot taken", createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"day off", createBooking.ErrProviderUnavailable, http.StatusConflict},
		{"service missing", createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"past date", createBooking.ErrInvalidDate, http.StatusBadRequest},
		{"notice", createBooking.ErrTooLateToBook, http.StatusBadRequest},
		{"validation", createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"storage", createBooking.ErrInternal, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(uc, logger.NewNop()), validBody, 7)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, logger.NewNop())

	bodies := map[string]string{
		"malformed":      `{`,
		"missing fields": `{"providerId":2}`,
		"bad date":       `{"providerId":2,"serviceId":5,"date":"13.10.2025","startTime":"09:30"}`,
		"bad time":       `{"providerId":2,"serviceId":5,"date":"2025-10-13","startTime":"9h"}`,
	}
	for name, body := range bodies {
		rec := serve(h, body, 7)
		require.Equal(t, http.StatusBadRequest, rec.Code, name)
	}

	rec := serve(h, validBody, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
