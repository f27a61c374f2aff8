package staff

import "errors"

var (
	// ErrWasherNotFound возвращается, когда сотрудник не найден
	ErrWasherNotFound = errors.New("staff: washer not found")

	// ErrDuplicateWasher возвращается, когда сотрудник с таким ID уже есть
	ErrDuplicateWasher = errors.New("staff: washer already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("staff: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("staff: internal error")
)
