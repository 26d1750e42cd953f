package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания и заблокированных дат провайдера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ReplaceWeekdayRules заменяет все рабочие интервалы провайдера на день недели
// Пустой ranges делает день нерабочим.
// Удаление и вставка должны выполняться в одной транзакции (см. service/availability)
func (r *Repository) ReplaceWeekdayRules(ctx context.Context, providerID int64, weekday time.Weekday, ranges []domain.TimeRange) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("availability_rules").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceWeekdayRules - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceWeekdayRules - execute delete: %w", ErrExecQuery, err)
	}

	rules := make([]*domain.AvailabilityRule, 0, len(ranges))
	if len(ranges) == 0 {
		return rules, nil
	}

	insertBuilder := psqlbuilder.Insert("availability_rules").
		Columns("provider_id", "weekday", "start_time", "end_time")
	for _, tr := range ranges {
		insertBuilder = insertBuilder.Values(providerID, int(weekday), tr.Start, tr.End)
	}

	insertQuery, insertArgs, err := insertBuilder.
		Suffix("RETURNING id, provider_id, weekday, start_time, end_time, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceWeekdayRules - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, insertQuery, insertArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceWeekdayRules - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// GetRulesByProvider получает все недельное расписание провайдера
// Отсортировано по дню недели и времени начала
func (r *Repository) GetRulesByProvider(ctx context.Context, providerID int64) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "provider_id", "weekday", "start_time", "end_time", "created_at").
		From("availability_rules").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("weekday ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRulesByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRulesByProvider - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// GetRulesByWeekday получает рабочие интервалы провайдера на день недели
func (r *Repository) GetRulesByWeekday(ctx context.Context, providerID int64, weekday time.Weekday) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "provider_id", "weekday", "start_time", "end_time", "created_at").
		From("availability_rules").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRulesByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRulesByWeekday - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// UpsertUnavailableDate блокирует дату провайдера
// Повторная блокировка той же даты обновляет причину
func (r *Repository) UpsertUnavailableDate(ctx context.Context, date *domain.UnavailableDate) (*domain.UnavailableDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("unavailable_dates").
		Columns("provider_id", "date", "reason").
		Values(date.ProviderID, domain.DateOnly(date.Date), date.Reason).
		Suffix("ON CONFLICT (provider_id, date) DO UPDATE SET reason = EXCLUDED.reason RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertUnavailableDate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&date.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertUnavailableDate - execute insert: %w", ErrExecQuery, err)
	}
	date.CreatedAt = createdAt.Time

	return date, nil
}

// DeleteUnavailableDate снимает блокировку даты
// Запись другого провайдера считается отсутствующей
func (r *Repository) DeleteUnavailableDate(ctx context.Context, providerID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("unavailable_dates").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteUnavailableDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteUnavailableDate - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteUnavailableDate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrUnavailableDateNotFound
	}

	return nil
}

// ListUnavailableDates получает заблокированные даты провайдера
// from != nil - только даты не раньше from
func (r *Repository) ListUnavailableDates(ctx context.Context, providerID int64, from *time.Time) ([]*domain.UnavailableDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "provider_id", "date", "reason", "created_at").
		From("unavailable_dates").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("date ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": domain.DateOnly(*from)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnavailableDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnavailableDates - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]*domain.UnavailableDate, 0)
	for rows.Next() {
		var d domain.UnavailableDate
		var createdAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.ProviderID, &d.Date, &d.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListUnavailableDates - scan row: %v", ErrScanRow, err)
		}
		d.CreatedAt = createdAt.Time
		dates = append(dates, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUnavailableDates - rows error: %w", ErrScanRow, err)
	}

	return dates, nil
}

// IsUnavailable проверяет, заблокирована ли дата провайдера
func (r *Repository) IsUnavailable(ctx context.Context, providerID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	subQuery, args, err := psqlbuilder.Select("1").
		From("unavailable_dates").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"date": domain.DateOnly(date)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsUnavailable - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, "SELECT EXISTS ("+subQuery+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: IsUnavailable - execute query: %w", ErrExecQuery, err)
	}

	return exists, nil
}

// scanRules сканирует результаты запроса в слайс правил
func scanRules(rows *sql.Rows) ([]*domain.AvailabilityRule, error) {
	rules := make([]*domain.AvailabilityRule, 0)

	for rows.Next() {
		var rule domain.AvailabilityRule
		var weekday int
		var createdAt sql.NullTime

		if err := rows.Scan(&rule.ID, &rule.ProviderID, &weekday, &rule.StartTime, &rule.EndTime, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}

		rule.Weekday = time.Weekday(weekday)
		rule.CreatedAt = createdAt.Time
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRules - rows error: %w", ErrScanRow, err)
	}

	return rules, nil
}
