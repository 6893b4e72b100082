package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	ListingsBase string
	ListingsKey  string
	BookingBase  string
	BookingKey   string

	Workers  int
	CacheTTL time.Duration
	QuoteTTL time.Duration

	// Booking engine defaults; individual properties may override the stay
	// length bounds.
	TaxRate           float64
	ExcludeTaxes      bool
	MinNights         int
	MaxNights         int
	AdvanceDays       int
	DynamicPricing    bool
	WeekendMultiplier float64
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	abool := func(k string, def bool) bool {
		if v := os.Getenv(k); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
		return def
	}

	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/renteasy?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		ListingsBase: env("LISTINGS_BASE_URL", "https://listings.renteasy.example/v1"),
		ListingsKey:  env("LISTINGS_API_KEY", ""),
		BookingBase:  env("BOOKING_BASE_URL", "https://bookings.renteasy.example/v1"),
		BookingKey:   env("BOOKING_API_KEY", ""),

		Workers:  atoi("INGEST_WORKERS", 8),
		CacheTTL: time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		QuoteTTL: time.Duration(atoi("QUOTE_TTL_SECONDS", 300)) * time.Second,

		TaxRate:           atof("BOOKING_TAX_RATE", 0.12),
		ExcludeTaxes:      !abool("BOOKING_INCLUDE_TAXES", true),
		MinNights:         atoi("BOOKING_MIN_NIGHTS", 1),
		MaxNights:         atoi("BOOKING_MAX_NIGHTS", 30),
		AdvanceDays:       atoi("BOOKING_ADVANCE_DAYS", 365),
		DynamicPricing:    abool("BOOKING_DYNAMIC_PRICING", false),
		WeekendMultiplier: atof("BOOKING_WEEKEND_MULTIPLIER", 1.2),
	}
	if c.ListingsKey == "" {
		log.Warn().Msg("LISTINGS_API_KEY is empty")
	}
	if c.BookingKey == "" {
		log.Warn().Msg("BOOKING_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
