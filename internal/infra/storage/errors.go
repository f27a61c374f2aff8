package storage

import "errors"

// Ошибки, общие для всех реализаций хранилища (postgres, mongo, memory)
var (
	// ErrDayNotFound день отсутствует в хранилище
	ErrDayNotFound = errors.New("storage: day not found")

	// ErrVersionConflict условное обновление дня проиграло гонку (версия изменилась)
	ErrVersionConflict = errors.New("storage: day version conflict")

	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("storage: booking not found")

	// ErrStatusConflict статус бронирования изменился с момента чтения
	ErrStatusConflict = errors.New("storage: booking status conflict")

	// ErrAlreadyRated у бронирования уже есть оценка
	ErrAlreadyRated = errors.New("storage: booking already rated")

	// ErrSettingsNotFound настройки ещё не сохранялись
	ErrSettingsNotFound = errors.New("storage: settings not found")

	// ErrDuplicateBooking бронирование с таким ID уже существует
	ErrDuplicateBooking = errors.New("storage: duplicate booking id")

	// ErrWasherNotFound сотрудник не найден
	ErrWasherNotFound = errors.New("storage: washer not found")

	// ErrDuplicateWasher сотрудник с таким ID уже существует
	ErrDuplicateWasher = errors.New("storage: duplicate washer id")
)
