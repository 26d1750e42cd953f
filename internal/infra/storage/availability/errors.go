package availability

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrUnavailableDateNotFound возвращается, когда заблокированная дата не найдена
	ErrUnavailableDateNotFound = fmt.Errorf("availability.repository: unavailable date not found: %w", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = fmt.Errorf("availability.repository: failed to build query: %w", domain.ErrPersistence)

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("availability.repository: failed to execute query: %w", domain.ErrPersistence)

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("availability.repository: failed to scan row: %w", domain.ErrPersistence)
)
