package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("booking.repository: booking not found: %w", domain.ErrNotFound)

	// ErrOverlap возвращается, когда БД отклонила пересекающееся окно (exclusion constraint)
	ErrOverlap = fmt.Errorf("booking.repository: window overlaps an active booking: %w", domain.ErrConflict)

	// ErrNoRowsUpdated условное обновление не затронуло ни одной строки:
	// бронирования нет, либо его статус не подходит под условие
	ErrNoRowsUpdated = errors.New("booking.repository: no rows updated")

	// ErrLockProvider ошибка захвата advisory lock провайдера
	ErrLockProvider = fmt.Errorf("booking.repository: failed to lock provider: %w", domain.ErrPersistence)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = fmt.Errorf("booking.repository: failed to build query: %w", domain.ErrPersistence)

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("booking.repository: failed to execute query: %w", domain.ErrPersistence)

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("booking.repository: failed to scan row: %w", domain.ErrPersistence)
)
