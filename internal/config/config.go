package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Pricing  PricingConfig  `toml:"pricing"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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
	TxMaxRetries    int    `toml:"tx_max_retries"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// PricingConfig тарифная сетка
// Денежные значения задаются строками, чтобы не терять точность при разборе
type PricingConfig struct {
	Currency                string            `toml:"currency"`
	SeasonalMultipliers     map[string]string `toml:"seasonal_multipliers"`
	MealPlanCosts           map[string]string `toml:"meal_plan_costs"`
	WeekendSurchargeRate    string            `toml:"weekend_surcharge_rate"`
	HolidaySurchargeRate    string            `toml:"holiday_surcharge_rate"`
	LongStayThresholdNights *int              `toml:"long_stay_threshold_nights"`
	LongStayDiscountPct     string            `toml:"long_stay_discount_pct"`
}

// Load загружает конфигурацию из TOML файла
// Перед чтением подгружает .env (если есть); переменные окружения
// переопределяют значения из файла
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RateTable собирает тарифную сетку из конфигурации поверх значений по умолчанию
func (c *Config) RateTable() (domain.RateTable, error) {
	table := domain.DefaultRateTable()
	p := c.Pricing

	if p.Currency != "" {
		table.Currency = p.Currency
	}

	for tier, raw := range p.SeasonalMultipliers {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return table, fmt.Errorf("%w: seasonal multiplier %s: %v", ErrInvalidConfig, tier, err)
		}
		table.SeasonalMultipliers[domain.SeasonalTier(tier)] = value
	}

	for plan, raw := range p.MealPlanCosts {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return table, fmt.Errorf("%w: meal plan cost %s: %v", ErrInvalidConfig, plan, err)
		}
		table.MealPlanCosts[domain.MealPlan(plan)] = value
	}

	var err error
	if table.WeekendSurchargeRate, err = parseDecimalOr(p.WeekendSurchargeRate, table.WeekendSurchargeRate); err != nil {
		return table, fmt.Errorf("%w: weekend_surcharge_rate: %v", ErrInvalidConfig, err)
	}
	if table.HolidaySurchargeRate, err = parseDecimalOr(p.HolidaySurchargeRate, table.HolidaySurchargeRate); err != nil {
		return table, fmt.Errorf("%w: holiday_surcharge_rate: %v", ErrInvalidConfig, err)
	}
	if table.LongStayDiscountPct, err = parseDecimalOr(p.LongStayDiscountPct, table.LongStayDiscountPct); err != nil {
		return table, fmt.Errorf("%w: long_stay_discount_pct: %v", ErrInvalidConfig, err)
	}
	if p.LongStayThresholdNights != nil {
		table.LongStayThresholdNights = *p.LongStayThresholdNights
	}

	if err := table.Validate(); err != nil {
		return table, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return table, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	if _, err := c.RateTable(); err != nil {
		return err
	}
	return nil
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
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			TxMaxRetries:    3,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "hotel_booking_service",
		},
	}
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("DB_HOST"); ok {
		cfg.Database.Host = v
	}
	if v, ok := os.LookupEnv("DB_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: DB_PORT: %v", ErrInvalidConfig, err)
		}
		cfg.Database.Port = port
	}
	if v, ok := os.LookupEnv("DB_USER"); ok {
		cfg.Database.User = v
	}
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		cfg.Database.Password = v
	}
	if v, ok := os.LookupEnv("DB_NAME"); ok {
		cfg.Database.DBName = v
	}
	if v, ok := os.LookupEnv("HTTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT: %v", ErrInvalidConfig, err)
		}
		cfg.Server.HTTPPort = port
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.Logs.Level = v
	}
	return nil
}

func parseDecimalOr(raw string, def decimal.Decimal) (decimal.Decimal, error) {
	if raw == "" {
		return def, nil
	}
	return decimal.NewFromString(raw)
}
