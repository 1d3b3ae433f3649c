package utils

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Redis        RedisConfig
	Geocode      GeocodeConfig
	Pricing      PricingConfig
	Cancellation CancellationConfig
	Queue        QueueConfig
	MQ           MQConfig
	Notification NotificationConfig
	Stripe       StripeConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	// Timezone is the business location used to interpret slot dates and times.
	Timezone string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type GeocodeConfig struct {
	BaseURL       string
	APIKey        string
	Region        string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	CacheTTL      time.Duration
}

type PricingConfig struct {
	OriginLat         float64
	OriginLon         float64
	FreeRadiusMiles   float64
	PerMileRate       float64
	MinimumSurcharge  float64
	MaximumSurcharge  float64
	PostalCodePattern string
}

type CancellationConfig struct {
	FreeWindowHours int
	FeePercent      float64
}

type QueueConfig struct {
	Enabled       bool
	// WorkerEnabled runs the task worker in this process. Turn it off only
	// when another instance consumes the queue.
	WorkerEnabled bool
	Concurrency   int
	MaxRetry      int
	// RetryBackoff is the first delay between attempts when no queue is
	// configured; it doubles per attempt.
	RetryBackoff  time.Duration
}

type MQConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

type NotificationConfig struct {
	FCMEnabled         bool
	FCMCredentialsFile string
}

type StripeConfig struct {
	SecretKey string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "mobile-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("APP_TIMEZONE", "UTC")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_ISSUER", "mobile-booking")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("GEOCODE_BASE_URL", "https://maps.googleapis.com/maps/api/geocode/json")
	viper.SetDefault("GEOCODE_REGION", "us")
	viper.SetDefault("GEOCODE_TIMEOUT", "3s")
	viper.SetDefault("GEOCODE_RATE_PER_SECOND", 10)
	viper.SetDefault("GEOCODE_BURST", 5)
	viper.SetDefault("GEOCODE_CACHE_TTL", "720h")
	viper.SetDefault("PRICING_FREE_RADIUS_MILES", 10)
	viper.SetDefault("PRICING_PER_MILE_RATE", 1.50)
	viper.SetDefault("PRICING_MIN_SURCHARGE", 5)
	viper.SetDefault("PRICING_MAX_SURCHARGE", 50)
	viper.SetDefault("PRICING_POSTAL_CODE_PATTERN", `^\d{5}(-\d{4})?$`)
	viper.SetDefault("CANCEL_FREE_WINDOW_HOURS", 24)
	viper.SetDefault("CANCEL_FEE_PERCENT", 50)
	viper.SetDefault("QUEUE_ENABLED", false)
	viper.SetDefault("QUEUE_WORKER_ENABLED", true)
	viper.SetDefault("QUEUE_CONCURRENCY", 5)
	viper.SetDefault("QUEUE_MAX_RETRY", 8)
	viper.SetDefault("QUEUE_RETRY_BACKOFF", "2s")
	viper.SetDefault("MQ_ENABLED", false)
	viper.SetDefault("MQ_EXCHANGE", "booking.events")
	viper.SetDefault("FCM_ENABLED", false)

	// The .env file is optional; plain environment variables are enough.
	if _, err := os.Stat(".env"); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Port:     viper.GetString("PORT"),
			Debug:    viper.GetBool("DEBUG"),
			LogPath:  viper.GetString("LOG_PATH"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Issuer: viper.GetString("JWT_ISSUER"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Geocode: GeocodeConfig{
			BaseURL:       viper.GetString("GEOCODE_BASE_URL"),
			APIKey:        viper.GetString("GEOCODE_API_KEY"),
			Region:        viper.GetString("GEOCODE_REGION"),
			Timeout:       viper.GetDuration("GEOCODE_TIMEOUT"),
			RatePerSecond: viper.GetFloat64("GEOCODE_RATE_PER_SECOND"),
			Burst:         viper.GetInt("GEOCODE_BURST"),
			CacheTTL:      viper.GetDuration("GEOCODE_CACHE_TTL"),
		},
		Pricing: PricingConfig{
			OriginLat:         viper.GetFloat64("PRICING_ORIGIN_LAT"),
			OriginLon:         viper.GetFloat64("PRICING_ORIGIN_LON"),
			FreeRadiusMiles:   viper.GetFloat64("PRICING_FREE_RADIUS_MILES"),
			PerMileRate:       viper.GetFloat64("PRICING_PER_MILE_RATE"),
			MinimumSurcharge:  viper.GetFloat64("PRICING_MIN_SURCHARGE"),
			MaximumSurcharge:  viper.GetFloat64("PRICING_MAX_SURCHARGE"),
			PostalCodePattern: viper.GetString("PRICING_POSTAL_CODE_PATTERN"),
		},
		Cancellation: CancellationConfig{
			FreeWindowHours: viper.GetInt("CANCEL_FREE_WINDOW_HOURS"),
			FeePercent:      viper.GetFloat64("CANCEL_FEE_PERCENT"),
		},
		Queue: QueueConfig{
			Enabled:       viper.GetBool("QUEUE_ENABLED"),
			WorkerEnabled: viper.GetBool("QUEUE_WORKER_ENABLED"),
			Concurrency:   viper.GetInt("QUEUE_CONCURRENCY"),
			MaxRetry:      viper.GetInt("QUEUE_MAX_RETRY"),
			RetryBackoff:  viper.GetDuration("QUEUE_RETRY_BACKOFF"),
		},
		MQ: MQConfig{
			Enabled:  viper.GetBool("MQ_ENABLED"),
			URL:      viper.GetString("MQ_URL"),
			Exchange: viper.GetString("MQ_EXCHANGE"),
		},
		Notification: NotificationConfig{
			FCMEnabled:         viper.GetBool("FCM_ENABLED"),
			FCMCredentialsFile: viper.GetString("FCM_CREDENTIALS_FILE"),
		},
		Stripe: StripeConfig{
			SecretKey: viper.GetString("STRIPE_SECRET_KEY"),
		},
	}

	return config, nil
}

// Location resolves the business timezone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
