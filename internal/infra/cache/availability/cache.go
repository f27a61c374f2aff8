package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
)

const (
	keyPrefix = "availability:day:"
	genPrefix = "availability:gen:"

	// генерация должна пережить любое чтение, начатое до инвалидации
	genTTL = 24 * time.Hour
)

// setIfGeneration записывает день, только если с момента чтения генерации
// ключ не инвалидировали
var setIfGeneration = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if (cur or '0') ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// ErrCacheMiss день отсутствует в кеше
var ErrCacheMiss = errors.New("availability cache: miss")

type cachedDay struct {
	Date    string            `json:"date"`
	Slots   []domain.TimeSlot `json:"slots"`
	Version int64             `json:"version"`
}

// Cache кеш чтения доступности дня в Redis
// Используется только для getAvailability; журнал бронирований читает хранилище
// напрямую и инвалидирует ключ после успешной записи
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кеш. ttl <= 0 отключает запись в кеш
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает день из кеша или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, date time.Time) (*domain.DayAvailability, error) {
	val, err := c.client.Get(ctx, key(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("availability cache: get: %w", err)
	}

	var cd cachedDay
	if err := json.Unmarshal(val, &cd); err != nil {
		return nil, fmt.Errorf("availability cache: decode: %w", err)
	}

	parsed, err := domain.ParseDate(cd.Date)
	if err != nil {
		return nil, fmt.Errorf("availability cache: decode date: %w", err)
	}

	return &domain.DayAvailability{Date: parsed, Slots: cd.Slots, Version: cd.Version}, nil
}

// Generation возвращает текущую генерацию дня
// Читатель берет её до чтения хранилища и передает в Set
func (c *Cache) Generation(ctx context.Context, date time.Time) (int64, error) {
	gen, err := c.client.Get(ctx, genKey(date)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("availability cache: generation: %w", err)
	}
	return gen, nil
}

// Set сохраняет день с TTL, если генерация не изменилась
// Возвращает false, если день инвалидировали после чтения generation
func (c *Cache) Set(ctx context.Context, day *domain.DayAvailability, generation int64) (bool, error) {
	if c.ttl <= 0 {
		return false, nil
	}

	data, err := json.Marshal(cachedDay{Date: day.DateKey(), Slots: day.Slots, Version: day.Version})
	if err != nil {
		return false, fmt.Errorf("availability cache: encode: %w", err)
	}

	stored, err := setIfGeneration.Run(ctx, c.client,
		[]string{genKey(day.Date), key(day.Date)},
		strconv.FormatInt(generation, 10), data, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("availability cache: set: %w", err)
	}
	return stored == 1, nil
}

// Invalidate удаляет день из кеша и увеличивает его генерацию
func (c *Cache) Invalidate(ctx context.Context, date time.Time) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(date))
		pipe.Expire(ctx, genKey(date), genTTL)
		pipe.Del(ctx, key(date))
		return nil
	})
	if err != nil {
		return fmt.Errorf("availability cache: invalidate: %w", err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func key(date time.Time) string {
	return keyPrefix + date.Format(domain.DateFormat)
}

func genKey(date time.Time) string {
	return genPrefix + date.Format(domain.DateFormat)
}
