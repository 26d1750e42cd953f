package availability

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestReplaceWeekdayRules(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	mock.ExpectExec("DELETE FROM availability_rules WHERE provider_id = \\$1 AND weekday = \\$2").
		WithArgs(int64(1), 1).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery("INSERT INTO availability_rules \\(provider_id,weekday,start_time,end_time\\) VALUES \\(\\$1,\\$2,\\$3,\\$4\\),\\(\\$5,\\$6,\\$7,\\$8\\)").
		WithArgs(int64(1), 1, "09:00", "12:00", int64(1), 1, "14:00", "18:00").
		WillReturnRows(sqlmock.NewRows([]string{"id", "provider_id", "weekday", "start_time", "end_time", "created_at"}).
			AddRow(int64(1), int64(1), 1, "09:00:00", "12:00:00", now).
			AddRow(int64(2), int64(1), 1, "14:00:00", "18:00:00", now))

	rules, err := repo.ReplaceWeekdayRules(context.Background(), 1, time.Monday, []domain.TimeRange{
		{Start: "09:00", End: "12:00"},
		{Start: "14:00", End: "18:00"},
	})

	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, time.Monday, rules[0].Weekday)
	assert.Equal(t, "14:00", rules[1].StartTime.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRulesByWeekday_EndOfDay(t *testing.T) {
	repo, mock := setupRepo(t)
	clock := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, provider_id, weekday, start_time, end_time, created_at FROM availability_rules WHERE provider_id = \\$1 AND weekday = \\$2").
		WithArgs(int64(1), 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "provider_id", "weekday", "start_time", "end_time", "created_at"}).
			AddRow(int64(4), int64(1), 5, clock.Add(20*time.Hour), clock.Add(24*time.Hour), time.Now()))

	rules, err := repo.GetRulesByWeekday(context.Background(), 1, time.Friday)

	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "20:00", rules[0].StartTime.String())
	assert.Equal(t, "24:00", rules[0].EndTime.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceWeekdayRules_EmptyClearsDay(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec("DELETE FROM availability_rules").
		WillReturnResult(sqlmock.NewResult(0, 2))

	rules, err := repo.ReplaceWeekdayRules(context.Background(), 1, time.Sunday, nil)

	require.NoError(t, err)
	assert.Empty(t, rules)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertUnavailableDate(t *testing.T) {
	repo, mock := setupRepo(t)
	date := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO unavailable_dates (.+) ON CONFLICT \\(provider_id, date\\) DO UPDATE SET reason = EXCLUDED.reason").
		WithArgs(int64(1), date, "holiday").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), time.Now()))

	saved, err := repo.UpsertUnavailableDate(context.Background(), &domain.UnavailableDate{
		ProviderID: 1,
		Date:       date,
		Reason:     ptr.Ptr("holiday"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), saved.ID)
}

func TestDeleteUnavailableDate_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec("DELETE FROM unavailable_dates WHERE id = \\$1 AND provider_id = \\$2").
		WithArgs(int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteUnavailableDate(context.Background(), 2, 5)
	assert.ErrorIs(t, err, ErrUnavailableDateNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIsUnavailable(t *testing.T) {
	repo, mock := setupRepo(t)
	date := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT EXISTS \\(SELECT 1 FROM unavailable_dates WHERE provider_id = \\$1 AND date = \\$2\\)").
		WithArgs(int64(1), date).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	blocked, err := repo.IsUnavailable(context.Background(), 1, date)

	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestListUnavailableDates_FromDate(t *testing.T) {
	repo, mock := setupRepo(t)
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM unavailable_dates WHERE provider_id = \\$1 AND date >= \\$2 ORDER BY date ASC").
		WithArgs(int64(1), from).
		WillReturnRows(sqlmock.NewRows([]string{"id", "provider_id", "date", "reason", "created_at"}).
			AddRow(int64(1), int64(1), from.AddDate(0, 0, 3), nil, time.Now()))

	dates, err := repo.ListUnavailableDates(context.Background(), 1, &from)

	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Nil(t, dates[0].Reason)
}
