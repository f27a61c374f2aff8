package capacity

import "errors"

var (
	// ErrSlotNotFound дня или слота с такой меткой нет
	ErrSlotNotFound = errors.New("capacity: slot not found")

	// ErrContention условное обновление дня проиграло гонку на всех попытках
	ErrContention = errors.New("capacity: contention, retry later")

	// ErrTimeout контекст вызывающего истек; итог операции неизвестен
	ErrTimeout = errors.New("capacity: deadline exceeded, outcome unknown")

	// ErrInternal внутренняя ошибка хранилища
	ErrInternal = errors.New("capacity: internal error")
)
