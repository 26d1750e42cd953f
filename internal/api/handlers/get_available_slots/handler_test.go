package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

func serve(uc *MockUseCase, providerID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers/"+providerID+"/available-slots"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"providerId": providerID})
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Slots(t *testing.T) {
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailableSlots.Request) bool {
		return req.ProviderID == 2 && req.ServiceID == nil && req.Date.Equal(date)
	})).Return(&getAvailableSlots.Response{
		Date:            date,
		ProviderID:      2,
		IntervalMinutes: 60,
		Slots: []getAvailableSlots.Slot{
			{StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("10:00"), IsAvailable: true},
			{StartTime: types.MustTimeString("10:00"), EndTime: types.MustTimeString("11:00"), IsAvailable: false},
		},
	}, nil)

	rec := serve(uc, "2", "?date=2025-10-13")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-10-13", resp.Date)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, AvailableSlot{StartTime: "10:00", EndTime: "11:00", IsAvailable: false}, resp.Slots[1])
}

func TestHandle_BadParams(t *testing.T) {
	uc := new(MockUseCase)

	assert.Equal(t, http.StatusBadRequest, serve(uc, "x", "?date=2025-10-13").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "2", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "2", "?date=13/10/2025").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "2", "?date=2025-10-13&serviceId=abc").Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{getAvailableSlots.ErrProviderNotFound, http.StatusNotFound},
		{getAvailableSlots.ErrServiceNotFound, http.StatusNotFound},
		{getAvailableSlots.ErrInvalidDate, http.StatusBadRequest},
		{getAvailableSlots.ErrInternal, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		uc := new(MockUseCase)
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
		assert.Equal(t, tt.status, serve(uc, "2", "?date=2025-10-13&serviceId=5").Code, tt.err.Error())
	}
}
