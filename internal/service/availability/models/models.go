package models

import "time"

// SeedRangeRequest запрос на заполнение дней из расписания
type SeedRangeRequest struct {
	From time.Time
	To   time.Time
	// Overwrite перезаписывает существующие дни без занятых мест
	Overwrite bool
}

// SeedRangeResult итог заполнения
type SeedRangeResult struct {
	Seeded  []time.Time
	Closed  []time.Time
	Skipped []time.Time
	// Held дни, не перезаписанные из-за действующих бронирований
	Held []time.Time
}
