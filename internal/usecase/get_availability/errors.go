package get_availability

import "errors"

var (
	// ErrDayNotFound возвращается, когда день не заведен
	ErrDayNotFound = errors.New("get_availability: day not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
