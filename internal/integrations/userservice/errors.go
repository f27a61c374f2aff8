package userservice

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден у пользователя
	ErrVehicleNotFound = errors.New("userservice: vehicle not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
