package dbmetrics

import (
	"context"
	"database/sql"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedQuery struct {
	operation string
	status    string
}

type fakeRecorder struct {
	mu      sync.Mutex
	queries []recordedQuery
}

func (r *fakeRecorder) ObserveDBQuery(operation, status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, recordedQuery{operation: operation, status: status})
}

func (r *fakeRecorder) SetDBPoolStats(sql.DBStats) {}

func TestDB_RecordsQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := &fakeRecorder{}
	wrapped := Wrap(db, rec)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability_rules")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1")).
		WillReturnError(assert.AnError)

	_, err = wrapped.ExecContext(context.Background(), "DELETE FROM availability_rules")
	require.NoError(t, err)
	_, err = wrapped.QueryContext(context.Background(), "SELECT 1")
	require.Error(t, err)

	require.Len(t, rec.queries, 2)
	assert.Equal(t, recordedQuery{operation: "delete", status: "ok"}, rec.queries[0])
	assert.Equal(t, recordedQuery{operation: "select", status: "error"}, rec.queries[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor_PrefersTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := Wrap(db, nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, wrapped, GetExecutor(ctx, wrapped))

	mock.ExpectBegin()
	tx, err := wrapped.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, wrapped))

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "insert", operationName("  INSERT INTO bookings (id) VALUES ($1)"))
	assert.Equal(t, "unknown", operationName(""))
}
