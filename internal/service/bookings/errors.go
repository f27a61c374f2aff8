package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("bookings: booking already cancelled")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("bookings: invalid status transition")

	// ErrInvalidState возвращается, когда оценка невозможна в текущем статусе
	ErrInvalidState = errors.New("bookings: booking is not completed")

	// ErrWasherNotFound возвращается при назначении несуществующего сотрудника
	ErrWasherNotFound = errors.New("bookings: washer not found")

	// ErrNotAssignable возвращается при назначении сотрудника на отмененное или завершенное бронирование
	ErrNotAssignable = errors.New("bookings: booking is closed for assignment")

	// ErrAlreadyRated возвращается при повторной оценке
	ErrAlreadyRated = errors.New("bookings: booking already rated")

	// ErrContention возвращается, когда слот не удалось обновить за отведенные попытки
	ErrContention = errors.New("bookings: contention, retry later")

	// ErrTimeout возвращается, когда истек срок запроса и итог операции неизвестен
	ErrTimeout = errors.New("bookings: deadline exceeded, re-query booking state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
