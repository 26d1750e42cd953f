package record_payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) RecordPayment(ctx context.Context, id int64, req *models.RecordPaymentRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/internal/bookings/9/payment", strings.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"bookingId": "9"})
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		result *models.BookingResponse
		err    error
		status int
	}{
		{"paid", &models.BookingResponse{ID: 9, PaymentStatus: "paid"}, nil, http.StatusOK},
		{"already paid", nil, bookings.ErrPaymentNotAllowed, http.StatusConflict},
		{"missing", nil, bookings.ErrBookingNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBookingService)
			svc.On("RecordPayment", mock.Anything, int64(9), &models.RecordPaymentRequest{PaymentReference: "pi_123"}).
				Return(tt.result, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).Handle(rec, newRequest(`{"paymentReference":"pi_123"}`))

			assert.Equal(t, tt.status, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	for _, body := range []string{`{}`, `{"paymentReference":"pi_1","extra":true}`, `not json`} {
		svc := new(MockBookingService)
		rec := httptest.NewRecorder()

		NewHandler(svc, logger.NewNop()).Handle(rec, newRequest(body))

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		svc.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
	}
}
