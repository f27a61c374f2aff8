package get_availability

import "time"

// Request модель запроса доступности дня
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response доступность дня
type Response struct {
	Date    time.Time
	Version int64
	IsOpen  bool
	Slots   []Slot
}

// Slot слот с остатками мест и аннотацией смены
type Slot struct {
	Time             string
	MaxRegular       int
	CurrentRegular   int
	RemainingRegular int
	MaxPremium       int
	CurrentPremium   int
	RemainingPremium int
	IsOpen           bool
	Bookable         bool // открыт и начинается не раньше отсечки
	Team             string
	CycleCode        string
	Bays             []int
}
