package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
)

// Драйверы хранилища
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
	StorageDriverMemory   = "memory"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Logs        LogsConfig        `toml:"logs"`
	Server      ServerConfig      `toml:"server"`
	Storage     StorageConfig     `toml:"storage"`
	Database    DatabaseConfig    `toml:"database"`
	Mongo       MongoConfig       `toml:"mongo"`
	Redis       RedisConfig       `toml:"redis"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Auth        AuthConfig        `toml:"auth"`
	CORS        CORSConfig        `toml:"cors"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
	Ledger      LedgerConfig      `toml:"ledger"`
	UserService UserServiceConfig `toml:"user_service"`
	Services    []domain.Service  `toml:"services"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// StorageConfig выбор хранилища
type StorageConfig struct {
	Driver string `toml:"driver"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MongoConfig настройки MongoDB
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
	Timeout  int    `toml:"timeout"`
}

// RedisConfig настройки кеша доступности
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// AuthConfig настройки проверки токенов провайдера идентификации
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
}

// CORSConfig настройки CORS для браузерных клиентов
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// RateLimitConfig ограничение частоты запросов на изменяющие маршруты
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// LedgerConfig настройки журнала бронирований
type LedgerConfig struct {
	MaxAttempts    int    `toml:"max_attempts"`
	PremiumPerSlot int    `toml:"premium_per_slot"`
	Timezone       string `toml:"timezone"`
}

// UserServiceConfig настройки клиента UserService
type UserServiceConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load загружает конфигурацию из TOML файла
// Перед разбором подгружается .env (если есть) и раскрываются ${VAR}
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return Parse(os.ExpandEnv(string(raw)))
}

// Parse разбирает TOML, проставляет значения по умолчанию и валидирует результат
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Mongo.Timeout == 0 {
		c.Mongo.Timeout = 10
	}
	if c.Redis.TTLSeconds == 0 {
		c.Redis.TTLSeconds = 30
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc_availability_ledger"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
	if c.Ledger.MaxAttempts == 0 {
		c.Ledger.MaxAttempts = domain.DefaultMaxAttempts
	}
	if c.Ledger.PremiumPerSlot == 0 {
		c.Ledger.PremiumPerSlot = domain.DefaultPremiumPerSlot
	}
	if c.Ledger.Timezone == "" {
		c.Ledger.Timezone = domain.DefaultTimezone
	}
	if c.UserService.Timeout == 0 {
		c.UserService.Timeout = 5
	}
	if len(c.Services) == 0 {
		c.Services = append([]domain.Service(nil), domain.DefaultServices...)
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database.host and database.dbname are required for postgres storage")
		}
	case StorageDriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			problems = append(problems, "mongo.uri and mongo.database are required for mongo storage")
		}
	case StorageDriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("unknown storage.driver %q", c.Storage.Driver))
	}

	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is enabled")
	}
	if c.UserService.Enabled && c.UserService.URL == "" {
		problems = append(problems, "user_service.url is required when user_service is enabled")
	}
	if c.Ledger.MaxAttempts < 1 {
		problems = append(problems, "ledger.max_attempts must be positive")
	}
	if c.Ledger.PremiumPerSlot < 0 {
		problems = append(problems, "ledger.premium_per_slot must not be negative")
	}
	for _, s := range c.Services {
		if s.Name == "" || s.Price < 0 {
			problems = append(problems, fmt.Sprintf("invalid service %q", s.Name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
