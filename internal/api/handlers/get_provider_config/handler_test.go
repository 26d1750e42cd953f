package get_provider_config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SchedulingService/internal/service/config"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type MockConfigService struct {
	mock.Mock
}

func (m *MockConfigService) GetConfig(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConfigResponse), args.Error(1)
}

func serve(svc *MockConfigService, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers/2/config"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"providerId": "2"})
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Defaults(t *testing.T) {
	svc := new(MockConfigService)
	svc.On("GetConfig", mock.Anything, &models.GetConfigRequest{ProviderID: 2}).
		Return(&models.ConfigResponse{ProviderID: 2, SlotIntervalMinutes: 60, Level: models.LevelDefault}, nil)

	rec := serve(svc, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"level":"default"`)
	assert.NotContains(t, rec.Body.String(), "createdAt")
}

func TestHandle_ServiceLevel(t *testing.T) {
	serviceID := int64(5)
	svc := new(MockConfigService)
	svc.On("GetConfig", mock.Anything, &models.GetConfigRequest{ProviderID: 2, ServiceID: &serviceID}).
		Return(&models.ConfigResponse{ProviderID: 2, ServiceID: &serviceID, Level: models.LevelService}, nil)

	rec := serve(svc, "?serviceId=5")

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_StorageDown(t *testing.T) {
	svc := new(MockConfigService)
	svc.On("GetConfig", mock.Anything, mock.Anything).Return(nil, config.ErrInternal)

	assert.Equal(t, http.StatusServiceUnavailable, serve(svc, "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, "?serviceId=x").Code)
}
