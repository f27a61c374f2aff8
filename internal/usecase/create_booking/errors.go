package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуги нет в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrVehicleNotFound возвращается, когда автомобиль не принадлежит пользователю
	ErrVehicleNotFound = errors.New("create_booking: vehicle not found")

	// ErrInvalidPaymentMethod возвращается, когда способ оплаты не принимается
	ErrInvalidPaymentMethod = errors.New("create_booking: payment method is not accepted")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда до начала слота осталось меньше отсечки
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotFound возвращается, когда дня или слота с такой меткой нет
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotFull возвращается, когда в выбранном пуле слота нет мест
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrContention возвращается, когда слот не удалось обновить за отведенные попытки
	ErrContention = errors.New("create_booking: contention, retry later")

	// ErrTimeout возвращается, когда истек срок запроса и итог неизвестен
	ErrTimeout = errors.New("create_booking: deadline exceeded, re-query booking state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
