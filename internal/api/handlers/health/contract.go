package health

import "context"

// Pinger зависимость, доступность которой проверяет readyz
type Pinger interface {
	Ping(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// PingFunc адаптер функции к Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }
