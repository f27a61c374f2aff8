package availability

import "errors"

var (
	// ErrDayNotFound возвращается, когда день не заведен
	ErrDayNotFound = errors.New("availability: day not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
