package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// SQLSTATE нарушения exclusion constraint bookings_no_overlap
const pqExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"client_id",
	"provider_id",
	"service_id",
	"scheduled_date",
	"scheduled_time",
	"duration_minutes",
	"status",
	"payment_status",
	"payment_reference",
	"price",
	"recurrence_group",
	"recurrence_sequence",
	"cancellation_reason",
	"cancelled_at",
	"refund_amount",
	"refund_id",
	"notes",
	"created_at",
	"updated_at",
}

// CancelParams данные отмены бронирования
type CancelParams struct {
	Reason        *string
	CancelledAt   time.Time
	RefundAmount  *float64
	RefundID      *string
	PaymentStatus domain.PaymentStatus
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockProvider берет транзакционный advisory lock на провайдера
// Все операции, меняющие расписание провайдера, сериализуются этим локом:
// он держится до конца транзакции и снимается при commit/rollback.
// Вне транзакции вызов не имеет смысла и возвращает ошибку.
func (r *Repository) LockProvider(ctx context.Context, providerID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockProvider - called outside of transaction", ErrLockProvider)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", providerID); err != nil {
		return fmt.Errorf("%w: LockProvider - provider_id=%d: %w", ErrLockProvider, providerID, err)
	}
	return nil
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Пересечение с активным бронированием, пойманное constraint'ом БД, возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"client_id",
			"provider_id",
			"service_id",
			"scheduled_date",
			"scheduled_time",
			"duration_minutes",
			"status",
			"payment_status",
			"payment_reference",
			"price",
			"recurrence_group",
			"recurrence_sequence",
			"notes",
		).
		Values(
			booking.ClientID,
			booking.ProviderID,
			booking.ServiceID,
			booking.ScheduledDate,
			booking.ScheduledTime,
			booking.DurationMinutes,
			booking.Status,
			booking.PaymentStatus,
			booking.PaymentReference,
			booking.Price,
			booking.RecurrenceGroup,
			booking.RecurrenceSequence,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if isExclusionViolation(err) {
		return nil, fmt.Errorf("%w: Create - provider_id=%d date=%s time=%s",
			ErrOverlap, booking.ProviderID, booking.ScheduledDate.Format(domain.DateFormat), booking.ScheduledTime)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// В транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetActiveByProviderAndDate получает неотмененные бронирования провайдера на дату
// Отсортированы по времени начала. В транзакции строки блокируются (FOR UPDATE)
func (r *Repository) GetActiveByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"scheduled_date": domain.DateOnly(date)}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		OrderBy("scheduled_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByProviderAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByProviderAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByClientID получает историю бронирований клиента
// Опционально фильтрует по статусу и дате начала
func (r *Repository) GetByClientID(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": filter.ClientID}).
		OrderBy("scheduled_date DESC", "scheduled_time DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_date": domain.DateOnly(*filter.FromDate)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByProviderWithFilter получает бронирования провайдера с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Периоду (StartDate, EndDate) - опционально
// - Статусу (Status) - опционально
// - Включению отмененных бронирований (IncludeCancelled)
//
// Для одной даты сортировка по времени начала, иначе сначала новые
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"provider_id": filter.ProviderID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_date": domain.DateOnly(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"scheduled_date": domain.DateOnly(*filter.EndDate)})
	}

	// Конкретный статус важнее флага IncludeCancelled
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	if filter.StartDate != nil && filter.EndDate != nil && domain.IsSameDay(*filter.StartDate, *filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("scheduled_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("scheduled_date DESC", "scheduled_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByRecurrenceGroup получает все бронирования серии в порядке номера повторения
func (r *Repository) GetByRecurrenceGroup(ctx context.Context, group string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"recurrence_group": group}).
		OrderBy("recurrence_sequence ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRecurrenceGroup - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRecurrenceGroup - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// TransitionStatus переводит бронирование в статус to, если текущий статус входит в from
// Проверка и запись выполняются одним UPDATE ... WHERE status IN (...),
// поэтому конкурентные переходы не могут перезаписать друг друга.
// Если ни одна строка не обновлена - ErrNoRowsUpdated
func (r *Repository) TransitionStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": statusStrings(from)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "TransitionStatus", query, args)
}

// UpdateSchedule переносит бронирование на новые дату и время
// Статус не меняется. Пересечение, пойманное constraint'ом БД, возвращается как ErrOverlap
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, date time.Time, start types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("scheduled_date", domain.DateOnly(date)).
		Set("scheduled_time", start).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": statusStrings([]domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed})}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	err = r.execConditional(ctx, executor, "UpdateSchedule", query, args)
	if isExclusionViolation(err) {
		return fmt.Errorf("%w: UpdateSchedule - booking id=%d", ErrOverlap, id)
	}
	return err
}

// Cancel отменяет бронирование и записывает результат возврата средств
// Отменить можно только pending или confirmed бронирование
func (r *Repository) Cancel(ctx context.Context, id int64, params CancelParams) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", string(domain.StatusCancelled)).
		Set("cancellation_reason", params.Reason).
		Set("cancelled_at", params.CancelledAt).
		Set("refund_amount", params.RefundAmount).
		Set("refund_id", params.RefundID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": statusStrings([]domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed})})

	if params.PaymentStatus != "" {
		updateBuilder = updateBuilder.Set("payment_status", string(params.PaymentStatus))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "Cancel", query, args)
}

// MarkPaid отмечает бронирование оплаченным и сохраняет ссылку на платеж
// Повторная оплата (paid/refunded) не перезаписывается
func (r *Repository) MarkPaid(ctx context.Context, id int64, paymentReference string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", string(domain.PaymentPaid)).
		Set("payment_reference", paymentReference).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"payment_status": []string{string(domain.PaymentUnpaid), string(domain.PaymentPending)}}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "MarkPaid", query, args)
}

// execConditional выполняет UPDATE и проверяет, что строка была затронута
func (r *Repository) execConditional(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNoRowsUpdated, op)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime
	var cancelledAt sql.NullTime
	var recurrenceSequence sql.NullInt64

	err := row.Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.ProviderID,
		&booking.ServiceID,
		&booking.ScheduledDate,
		&booking.ScheduledTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentReference,
		&booking.Price,
		&booking.RecurrenceGroup,
		&recurrenceSequence,
		&booking.CancellationReason,
		&cancelledAt,
		&booking.RefundAmount,
		&booking.RefundID,
		&booking.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if recurrenceSequence.Valid {
		seq := int(recurrenceSequence.Int64)
		booking.RecurrenceSequence = &seq
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		booking.CancelledAt = &t
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation
}
