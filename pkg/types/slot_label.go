package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// SlotLabelLayout формат метки слота ("09:00 AM")
	SlotLabelLayout = "03:04 PM"

	minutesPerDay = 24 * 60
)

// ErrInvalidSlotLabel возвращается при некорректном формате метки слота
var ErrInvalidSlotLabel = errors.New("invalid slot label format")

// SlotLabel метка временного слота в 12-часовом формате ("09:00 AM")
// Хранится в нормализованном виде с ведущим нулём
type SlotLabel string

// ParseSlotLabel разбирает метку слота
// Принимает как "9:00 AM", так и "09:00 AM", результат всегда нормализован
func ParseSlotLabel(s string) (SlotLabel, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	t, err := time.Parse("3:04 PM", s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlotLabel, s)
	}
	return SlotLabel(t.Format(SlotLabelLayout)), nil
}

// MustParseSlotLabel как ParseSlotLabel, но паникует при ошибке
// Используется только для статической конфигурации
func MustParseSlotLabel(s string) SlotLabel {
	l, err := ParseSlotLabel(s)
	if err != nil {
		panic(err)
	}
	return l
}

// SlotLabelFromMinutes строит метку по количеству минут от полуночи
func SlotLabelFromMinutes(minutes int) SlotLabel {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	t := time.Date(2000, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return SlotLabel(t.Format(SlotLabelLayout))
}

// Minutes возвращает количество минут от полуночи
func (l SlotLabel) Minutes() (int, error) {
	t, err := time.Parse(SlotLabelLayout, string(l))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlotLabel, string(l))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MustMinutes как Minutes, но возвращает -1 для некорректной метки
func (l SlotLabel) MustMinutes() int {
	m, err := l.Minutes()
	if err != nil {
		return -1
	}
	return m
}

// On возвращает момент начала слота в указанную дату
func (l SlotLabel) On(date time.Time) (time.Time, error) {
	m, err := l.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, date.Location()), nil
}

// Validate проверяет, что метка в нормализованном формате
func (l SlotLabel) Validate() error {
	parsed, err := ParseSlotLabel(string(l))
	if err != nil {
		return err
	}
	if parsed != l {
		return fmt.Errorf("%w: %q is not normalized", ErrInvalidSlotLabel, string(l))
	}
	return nil
}

// IsZero возвращает true, если метка не задана
func (l SlotLabel) IsZero() bool {
	return l == ""
}

func (l SlotLabel) String() string {
	return string(l)
}

// Value реализует driver.Valuer
func (l SlotLabel) Value() (driver.Value, error) {
	return string(l), nil
}

// Scan реализует sql.Scanner
func (l *SlotLabel) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*l = SlotLabel(v)
	case []byte:
		*l = SlotLabel(v)
	case nil:
		*l = ""
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidSlotLabel, src)
	}
	return nil
}
