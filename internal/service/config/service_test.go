package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/config"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type MockConfigRepo struct{ mock.Mock }
type MockCatalog struct{ mock.Mock }

func (m *MockConfigRepo) Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	args := m.Called(ctx, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleConfig), args.Error(1)
}

func (m *MockConfigRepo) GetByProviderAndService(ctx context.Context, providerID int64, serviceID *int64) (*domain.ScheduleConfig, error) {
	args := m.Called(ctx, providerID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleConfig), args.Error(1)
}

func (m *MockConfigRepo) GetConfigWithHierarchy(ctx context.Context, providerID int64, serviceID *int64) (*domain.ScheduleConfig, error) {
	args := m.Called(ctx, providerID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleConfig), args.Error(1)
}

func (m *MockConfigRepo) GetAllByProvider(ctx context.Context, providerID int64) ([]*domain.ScheduleConfig, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduleConfig), args.Error(1)
}

func (m *MockConfigRepo) Update(ctx context.Context, id int64, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	args := m.Called(ctx, id, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleConfig), args.Error(1)
}

func (m *MockConfigRepo) DeleteByProviderAndService(ctx context.Context, providerID int64, serviceID *int64) error {
	args := m.Called(ctx, providerID, serviceID)
	return args.Error(0)
}

func (m *MockCatalog) GetService(ctx context.Context, providerID, serviceID int64) (*catalogservice.Service, error) {
	args := m.Called(ctx, providerID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogservice.Service), args.Error(1)
}

var testDefaults = domain.ScheduleConfig{
	SlotIntervalMinutes:     30,
	MinBookingNoticeMinutes: 120,
	AdvanceBookingDays:      60,
}

func newTestService() (*Service, *MockConfigRepo, *MockCatalog) {
	repo := &MockConfigRepo{}
	catalog := &MockCatalog{}
	return NewService(repo, catalog, testDefaults, logger.NewNop()), repo, catalog
}

func storedConfig(id, providerID int64, serviceID *int64, interval int) *domain.ScheduleConfig {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.ScheduleConfig{
		ID:                      id,
		ProviderID:              providerID,
		ServiceID:               serviceID,
		SlotIntervalMinutes:     interval,
		MinBookingNoticeMinutes: 60,
		AdvanceBookingDays:      30,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

func TestResolveScheduleConfig_Stored(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	serviceID := ptr.Ptr(int64(5))

	repo.On("GetConfigWithHierarchy", ctx, int64(1), serviceID).Return(storedConfig(7, 1, serviceID, 15), nil)

	config, err := svc.ResolveScheduleConfig(ctx, 1, serviceID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), config.ID)
	assert.Equal(t, 15, config.SlotIntervalMinutes)
}

func TestResolveScheduleConfig_FallsBackToDefaults(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("GetConfigWithHierarchy", ctx, int64(1), (*int64)(nil)).Return(nil, configRepo.ErrConfigNotFound)

	config, err := svc.ResolveScheduleConfig(ctx, 1, nil)
	require.NoError(t, err)
	assert.True(t, config.IsDefault())
	assert.Equal(t, int64(1), config.ProviderID)
	assert.Equal(t, 30, config.SlotIntervalMinutes)
	assert.Equal(t, 120, config.MinBookingNoticeMinutes)
}

func TestResolveScheduleConfig_RepositoryError(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("GetConfigWithHierarchy", ctx, int64(1), (*int64)(nil)).Return(nil, errors.New("connection reset"))

	_, err := svc.ResolveScheduleConfig(ctx, 1, nil)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestGetConfig_DefaultLevel(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("GetConfigWithHierarchy", ctx, int64(1), (*int64)(nil)).Return(nil, configRepo.ErrConfigNotFound)

	resp, err := svc.GetConfig(ctx, &models.GetConfigRequest{ProviderID: 1})
	require.NoError(t, err)
	assert.Equal(t, models.LevelDefault, resp.Level)
	assert.Nil(t, resp.CreatedAt)
}

func TestGetAllByProvider_AccessDenied(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.GetAllByProvider(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "GetAllByProvider", mock.Anything, mock.Anything)
}

func TestUpsert_CreatesFromDefaults(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("GetByProviderAndService", ctx, int64(1), (*int64)(nil)).Return(nil, configRepo.ErrConfigNotFound)
	repo.On("Create", ctx, mock.MatchedBy(func(c *domain.ScheduleConfig) bool {
		// передан только интервал, остальное из значений по умолчанию
		return c.ProviderID == 1 && c.ServiceID == nil &&
			c.SlotIntervalMinutes == 45 && c.MinBookingNoticeMinutes == 120 && c.AdvanceBookingDays == 60
	})).Return(storedConfig(3, 1, nil, 45), nil)

	resp, err := svc.Upsert(ctx, &models.UpsertConfigRequest{
		ActorID:             1,
		ProviderID:          1,
		SlotIntervalMinutes: ptr.Ptr(45),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, models.LevelProvider, resp.Level)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsert_UpdatesExisting(t *testing.T) {
	svc, repo, catalog := newTestService()
	ctx := context.Background()
	serviceID := ptr.Ptr(int64(5))

	catalog.On("GetService", ctx, int64(1), int64(5)).Return(&catalogservice.Service{ID: 5, ProviderID: 1, DurationMinutes: 60}, nil)
	repo.On("GetByProviderAndService", ctx, int64(1), serviceID).Return(storedConfig(9, 1, serviceID, 15), nil)
	repo.On("Update", ctx, int64(9), mock.MatchedBy(func(c *domain.ScheduleConfig) bool {
		return c.SlotIntervalMinutes == 15 && c.AdvanceBookingDays == 0 && c.MinBookingNoticeMinutes == 60
	})).Return(storedConfig(9, 1, serviceID, 15), nil)

	resp, err := svc.Upsert(ctx, &models.UpsertConfigRequest{
		ActorID:            1,
		ProviderID:         1,
		ServiceID:          serviceID,
		AdvanceBookingDays: ptr.Ptr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, models.LevelService, resp.Level)
	repo.AssertExpectations(t)
}

func TestUpsert_Validation(t *testing.T) {
	cases := []struct {
		name string
		req  models.UpsertConfigRequest
	}{
		{"interval too small", models.UpsertConfigRequest{SlotIntervalMinutes: ptr.Ptr(4)}},
		{"interval too large", models.UpsertConfigRequest{SlotIntervalMinutes: ptr.Ptr(481)}},
		{"negative notice", models.UpsertConfigRequest{MinBookingNoticeMinutes: ptr.Ptr(-1)}},
		{"notice over a week", models.UpsertConfigRequest{MinBookingNoticeMinutes: ptr.Ptr(10081)}},
		{"advance over a year", models.UpsertConfigRequest{AdvanceBookingDays: ptr.Ptr(366)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, _ := newTestService()
			ctx := context.Background()
			repo.On("GetByProviderAndService", ctx, int64(1), (*int64)(nil)).Return(nil, configRepo.ErrConfigNotFound)

			req := tc.req
			req.ActorID, req.ProviderID = 1, 1
			_, err := svc.Upsert(ctx, &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpsert_AccessDenied(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.Upsert(context.Background(), &models.UpsertConfigRequest{ActorID: 2, ProviderID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	repo.AssertNotCalled(t, "GetByProviderAndService", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsert_ForeignService(t *testing.T) {
	svc, _, catalog := newTestService()
	ctx := context.Background()

	catalog.On("GetService", ctx, int64(1), int64(8)).Return(nil, catalogservice.ErrServiceNotFound)

	_, err := svc.Upsert(ctx, &models.UpsertConfigRequest{ActorID: 1, ProviderID: 1, ServiceID: ptr.Ptr(int64(8))})
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("DeleteByProviderAndService", ctx, int64(1), (*int64)(nil)).Return(nil).Once()
	require.NoError(t, svc.Delete(ctx, &models.DeleteConfigRequest{ActorID: 1, ProviderID: 1}))

	repo.On("DeleteByProviderAndService", ctx, int64(1), (*int64)(nil)).Return(configRepo.ErrConfigNotFound).Once()
	err := svc.Delete(ctx, &models.DeleteConfigRequest{ActorID: 1, ProviderID: 1})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}
