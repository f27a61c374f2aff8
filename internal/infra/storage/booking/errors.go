package booking

import (
	"errors"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = storage.ErrBookingNotFound

	// ErrStatusConflict возвращается, когда статус изменился с момента чтения
	ErrStatusConflict = storage.ErrStatusConflict

	// ErrAlreadyRated возвращается, когда оценка уже выставлена
	ErrAlreadyRated = storage.ErrAlreadyRated

	// ErrDuplicateBooking возвращается при повторной вставке того же ID
	ErrDuplicateBooking = storage.ErrDuplicateBooking

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
