package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID            string    // ID клиента из токена
	VehicleID         string    // ID автомобиля клиента
	ServiceName       string    // Название услуги из каталога
	Date              time.Time // Дата бронирования (без времени)
	Time              string    // Метка слота, например "09:00 AM"
	PaymentMethod     string    // GCash, Card, Maya
	PromoCode         *string   // Промокод (опционально)
	LoyaltyPointsUsed int       // Списанные баллы лояльности
}
