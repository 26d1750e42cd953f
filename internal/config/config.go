package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Catalog       CatalogConfig       `toml:"catalog_service"`
	Payments      PaymentsConfig      `toml:"payments"`
	Notifications NotificationsConfig `toml:"notifications"`
	Scheduling    SchedulingConfig    `toml:"scheduling"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	MigrateOnStart  bool   `toml:"migrate_on_start"`
	TxMaxRetries    int    `toml:"tx_max_retries"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RateLimitConfig ограничение запросов на одного клиента
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// CatalogConfig настройки клиента каталога провайдеров и услуг
type CatalogConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// PaymentsConfig настройки платежного шлюза
type PaymentsConfig struct {
	StripeSecretKey string `toml:"stripe_secret_key"`
}

// NotificationsConfig настройки канала уведомлений (Redis list)
type NotificationsConfig struct {
	Enabled       bool   `toml:"enabled"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Queue         string `toml:"queue"`
}

// SchedulingConfig значения по умолчанию для провайдеров без своей конфигурации
type SchedulingConfig struct {
	DefaultSlotIntervalMinutes     int `toml:"default_slot_interval_minutes"`
	DefaultMinBookingNoticeMinutes int `toml:"default_min_booking_notice_minutes"`
	DefaultAdvanceBookingDays      int `toml:"default_advance_booking_days"`
}

// ScheduleDefaults значения по умолчанию в виде доменной конфигурации
func (c SchedulingConfig) ScheduleDefaults() domain.ScheduleConfig {
	return domain.ScheduleConfig{
		SlotIntervalMinutes:     c.DefaultSlotIntervalMinutes,
		MinBookingNoticeMinutes: c.DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      c.DefaultAdvanceBookingDays,
	}
}

// Load читает конфигурацию из TOML файла
// Переменные окружения (в том числе из .env) переопределяют значения файла
func Load(path string) (*Config, error) {
	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MigrateOnStart:  true,
			TxMaxRetries:    3,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "scheduling_service",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Catalog: CatalogConfig{
			Timeout: 5,
		},
		Notifications: NotificationsConfig{
			RedisAddr: "localhost:6379",
			Queue:     "booking_events",
		},
		Scheduling: SchedulingConfig{
			DefaultSlotIntervalMinutes:     domain.DefaultSlotIntervalMinutes,
			DefaultMinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
			DefaultAdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
		},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Server.HTTPPort, "HTTP_PORT"); err != nil {
		return err
	}
	setString(&c.Catalog.URL, "CATALOG_SERVICE_URL")
	setString(&c.Payments.StripeSecretKey, "STRIPE_SECRET_KEY")
	setString(&c.Notifications.RedisAddr, "REDIS_ADDR")
	setString(&c.Notifications.RedisPassword, "REDIS_PASSWORD")
	setString(&c.Logs.Level, "LOG_LEVEL")
	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return errors.New("config: database host, dbname and user are required")
	}
	if c.Catalog.URL == "" {
		return errors.New("config: catalog_service.url is required")
	}
	if c.Notifications.Enabled && c.Notifications.RedisAddr == "" {
		return errors.New("config: notifications.redis_addr is required when notifications are enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("config: rate_limit requires positive requests_per_second and burst")
	}

	s := c.Scheduling
	if s.DefaultSlotIntervalMinutes < domain.MinSlotIntervalMinutes || s.DefaultSlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("config: scheduling.default_slot_interval_minutes must be between %d and %d",
			domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}
	if s.DefaultMinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || s.DefaultMinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("config: scheduling.default_min_booking_notice_minutes must be between %d and %d",
			domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}
	if s.DefaultAdvanceBookingDays < domain.MinAdvanceBookingDays || s.DefaultAdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("config: scheduling.default_advance_booking_days must be between %d and %d",
			domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}

func setString(dst *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}
