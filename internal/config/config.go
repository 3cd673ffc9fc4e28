package config

import (
	"log"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

type Config struct {
	Port            string
	DatabaseDSN     string
	Env             string
	SessionSecret   string
	VATRate         decimal.Decimal
	PaymentTermDays int
	LogLevel        string
	LogFormat       string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by the caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "file:billing.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.SessionSecret = getEnv("SESSION_SECRET", "devsessionsecret")
	cfg.VATRate = parseRate("VAT_RATE", "0.25")
	cfg.PaymentTermDays = parseInt("PAYMENT_TERM_DAYS", 14)
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Printf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}

// parseRate reads a VAT rate as a decimal fraction (e.g. "0.25" for 25%).
func parseRate(key, def string) decimal.Decimal {
	raw := getEnv(key, def)
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		log.Printf("invalid rate for %s: %s, using %s", key, raw, def)
		rate, _ = decimal.NewFromString(def)
	}
	return rate
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
