package washer

import (
	"errors"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage"
)

var (
	// ErrWasherNotFound возвращается, когда сотрудник не найден
	ErrWasherNotFound = storage.ErrWasherNotFound

	// ErrDuplicateWasher возвращается при повторной вставке того же ID
	ErrDuplicateWasher = storage.ErrDuplicateWasher

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("washer.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("washer.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("washer.repository: failed to scan row")
)
