package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/logger"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/numerator"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/printer"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Redis     RedisConfig
	Printer   PrinterConfig
	Store     StoreConfig
	OrderNo   OrderNoConfig
	Features  FeatureConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level       string
	Development bool
}

// RedisConfig points at the event bus. An empty Addr disables publishing.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PrinterConfig struct {
	Enabled bool
	Host    string
	Port    int
	Timeout time.Duration
	Width   int
}

type StoreConfig struct {
	Name     string
	Timezone string
}

type OrderNoConfig struct {
	Prefix   string
	PadWidth int
}

type FeatureConfig struct {
	Expenses bool
}

// AdminConfig seeds the first staff account when both fields are set.
type AdminConfig struct {
	Username string
	Password string
}

// Load reads configuration from .env and the environment.
func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		logger.Default().Warnw(".env file not found, using environment variables", "error", err)
	}

	return FromViper(v)
}

// FromViper builds a Config from v after applying defaults.
func FromViper(v *viper.Viper) *Config {
	setDefaults(v)

	return &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: stringList(v, "CORS_ALLOWED_ORIGINS"),
			AllowedMethods: stringList(v, "CORS_ALLOWED_METHODS"),
			AllowedHeaders: stringList(v, "CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:       v.GetString("LOG_LEVEL"),
			Development: v.GetBool("LOG_DEVELOPMENT"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Printer: PrinterConfig{
			Enabled: v.GetBool("POS_PRINTER_ENABLED"),
			Host:    strings.TrimSpace(v.GetString("POS_PRINTER_HOST")),
			Port:    v.GetInt("POS_PRINTER_PORT"),
			Timeout: time.Duration(v.GetInt("POS_PRINTER_TIMEOUT_SECONDS")) * time.Second,
			Width:   v.GetInt("POS_PRINTER_WIDTH"),
		},
		Store: StoreConfig{
			Name:     v.GetString("STORE_NAME"),
			Timezone: v.GetString("STORE_TIMEZONE"),
		},
		OrderNo: OrderNoConfig{
			Prefix:   v.GetString("ORDER_NO_PREFIX"),
			PadWidth: v.GetInt("ORDER_NO_PAD"),
		},
		Features: FeatureConfig{
			Expenses: v.GetBool("FEATURE_EXPENSES"),
		},
		Admin: AdminConfig{
			Username: v.GetString("ADMIN_USERNAME"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "vhojonbilash-pos")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "vhojonbilash")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Asia/Dhaka")
	v.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DEVELOPMENT", false)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("POS_PRINTER_ENABLED", false)
	v.SetDefault("POS_PRINTER_HOST", "")
	v.SetDefault("POS_PRINTER_PORT", printer.DefaultPort)
	v.SetDefault("POS_PRINTER_TIMEOUT_SECONDS", 10)
	v.SetDefault("POS_PRINTER_WIDTH", printer.DefaultWidth)
	v.SetDefault("STORE_NAME", "Vhojon Bilash")
	v.SetDefault("STORE_TIMEZONE", "Asia/Dhaka")
	v.SetDefault("ORDER_NO_PREFIX", "ORD")
	v.SetDefault("ORDER_NO_PAD", 4)
	v.SetDefault("FEATURE_EXPENSES", true)
}

// stringList accepts both comma-separated strings and real lists.
func stringList(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// Sink converts the printer section into the printer package's config.
func (c PrinterConfig) Sink() printer.Config {
	return printer.Config{
		Enabled: c.Enabled,
		Host:    c.Host,
		Port:    c.Port,
		Timeout: c.Timeout,
		Width:   c.Width,
	}
}

// Numerator converts the order number section into a generator config.
func (c OrderNoConfig) Numerator() numerator.Config {
	cfg := numerator.DefaultConfig(c.Prefix)
	if c.PadWidth > 0 {
		cfg.PadWidth = c.PadWidth
	}
	return cfg
}

// Location resolves the store timezone, falling back to local time.
func (c StoreConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Logger converts the log section into a logger config.
func (c LogConfig) Logger() logger.Config {
	return logger.Config{Level: c.Level, Development: c.Development}
}
