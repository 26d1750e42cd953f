package config

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

func setupRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func configRow(id int64, serviceID interface{}, interval int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(configColumns).AddRow(id, int64(1), serviceID, interval, 30, 14, now, now)
}

func TestGetConfigWithHierarchy(t *testing.T) {
	serviceID := ptr.Ptr(int64(5))

	t.Run("service level wins", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM provider_schedule_config WHERE provider_id = \\$1 AND service_id = \\$2").
			WithArgs(int64(1), int64(5)).
			WillReturnRows(configRow(2, int64(5), 30))

		cfg, err := repo.GetConfigWithHierarchy(context.Background(), 1, serviceID)
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.SlotIntervalMinutes)
		assert.Equal(t, serviceID, cfg.ServiceID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to provider level", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM provider_schedule_config WHERE provider_id = \\$1 AND service_id = \\$2").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT (.+) FROM provider_schedule_config WHERE provider_id = \\$1 AND service_id IS NULL").
			WithArgs(int64(1)).
			WillReturnRows(configRow(1, nil, 45))

		cfg, err := repo.GetConfigWithHierarchy(context.Background(), 1, serviceID)
		require.NoError(t, err)
		assert.Equal(t, 45, cfg.SlotIntervalMinutes)
		assert.True(t, cfg.IsProviderWide())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing configured", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM provider_schedule_config").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetConfigWithHierarchy(context.Background(), 1, nil)
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("database error is not swallowed", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM provider_schedule_config").
			WillReturnError(sql.ErrConnDone)

		_, err := repo.GetConfigWithHierarchy(context.Background(), 1, serviceID)
		assert.ErrorIs(t, err, ErrScanRow)
		assert.NotErrorIs(t, err, ErrConfigNotFound)
	})
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("INSERT INTO provider_schedule_config").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.ScheduleConfig{ProviderID: 1, SlotIntervalMinutes: 30})
	assert.ErrorIs(t, err, ErrDuplicateConfig)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("UPDATE provider_schedule_config SET (.+) RETURNING created_at, updated_at").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 9, &domain.ScheduleConfig{SlotIntervalMinutes: 30})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestDeleteByProviderAndService(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec("DELETE FROM provider_schedule_config WHERE provider_id = \\$1 AND service_id IS NULL").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteByProviderAndService(context.Background(), 1, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
