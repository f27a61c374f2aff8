package availability

import (
	"errors"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage"
)

var (
	// ErrDayNotFound возвращается, когда день отсутствует
	ErrDayNotFound = storage.ErrDayNotFound

	// ErrVersionConflict возвращается, когда версия дня изменилась с момента чтения
	ErrVersionConflict = storage.ErrVersionConflict

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")

	// ErrEncodeSlots возвращается при ошибке сериализации слотов
	ErrEncodeSlots = errors.New("availability.repository: failed to encode slots")
)
