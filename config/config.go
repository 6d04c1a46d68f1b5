package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	RabbitMQ   RabbitMQConfig
	Booking    BookingConfig
	Migrations MigrationsConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Env         string
	LogLevel    string
	Timezone    string
	CORSOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// RabbitMQConfig is optional; an empty URL disables event publishing.
type RabbitMQConfig struct {
	URL   string
	Queue string
}

// BookingConfig holds the hotel's house rules used by the booking lifecycle.
type BookingConfig struct {
	CheckInHour       int
	CheckOutHour      int
	SweepInterval     time.Duration
	SweepLockTTL      time.Duration
	StrictTransitions bool
	MaxExtensionDays  int
}

type MigrationsConfig struct {
	Path      string
	AutoApply bool
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	viper.AutomaticEnv()
	setDefaults()

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	sweepInterval, err := time.ParseDuration(viper.GetString("BOOKING_SWEEP_INTERVAL"))
	if err != nil || sweepInterval <= 0 {
		sweepInterval = time.Minute
	}

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Port:        viper.GetString("APP_PORT"),
			Env:         viper.GetString("APP_ENV"),
			LogLevel:    viper.GetString("LOG_LEVEL"),
			Timezone:    viper.GetString("APP_TIMEZONE"),
			CORSOrigins: splitList(viper.GetString("APP_CORS_ORIGINS")),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:        viper.GetString("REDIS_HOST"),
			Port:        viper.GetString("REDIS_PORT"),
			Password:    viper.GetString("REDIS_PASSWORD"),
			DB:          viper.GetInt("REDIS_DB"),
			PoolSize:    viper.GetInt("REDIS_POOL_SIZE"),
			DialTimeout: viper.GetDuration("REDIS_DIAL_TIMEOUT"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		RabbitMQ: RabbitMQConfig{
			URL:   viper.GetString("RABBITMQ_URL"),
			Queue: viper.GetString("RABBITMQ_BOOKING_QUEUE"),
		},
		Booking: BookingConfig{
			CheckInHour:       viper.GetInt("BOOKING_CHECKIN_HOUR"),
			CheckOutHour:      viper.GetInt("BOOKING_CHECKOUT_HOUR"),
			SweepInterval:     sweepInterval,
			SweepLockTTL:      viper.GetDuration("BOOKING_SWEEP_LOCK_TTL"),
			StrictTransitions: viper.GetBool("BOOKING_STRICT_TRANSITIONS"),
			MaxExtensionDays:  viper.GetInt("BOOKING_MAX_EXTENSION_DAYS"),
		},
		Migrations: MigrationsConfig{
			Path:      viper.GetString("MIGRATIONS_PATH"),
			AutoApply: viper.GetBool("MIGRATIONS_AUTO_APPLY"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "Hotel Ortus")
	viper.SetDefault("APP_PORT", "3000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_TIMEZONE", "Asia/Kolkata")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 10)
	viper.SetDefault("REDIS_DIAL_TIMEOUT", "5s")

	viper.SetDefault("RABBITMQ_BOOKING_QUEUE", "booking.events")

	viper.SetDefault("BOOKING_CHECKIN_HOUR", 11)
	viper.SetDefault("BOOKING_CHECKOUT_HOUR", 11)
	viper.SetDefault("BOOKING_SWEEP_INTERVAL", "60s")
	viper.SetDefault("BOOKING_SWEEP_LOCK_TTL", "50s")
	viper.SetDefault("BOOKING_STRICT_TRANSITIONS", false)
	viper.SetDefault("BOOKING_MAX_EXTENSION_DAYS", 0)

	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("MIGRATIONS_AUTO_APPLY", true)
}

// Location resolves the hotel's local timezone, falling back to UTC with a warning.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		logrus.Warnf("Unknown timezone %q, falling back to UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
