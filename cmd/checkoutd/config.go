package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Config struct {
	HTTPPort    string
	DatabaseURL string
	RedisAddr   string
	StoreTTL    time.Duration
	StoresFile  string

	KafkaBrokers []string
	KafkaTopic   string

	Currency           currency.Unit
	DefaultShippingFee decimal.Decimal

	QuoteTimeout    time.Duration
	LookupTimeout   time.Duration
	PersistTimeout  time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() (*Config, error) {
	cur, err := currency.ParseISO(getEnv("CURRENCY", "PHP"))
	if err != nil {
		return nil, fmt.Errorf("CURRENCY: %w", err)
	}

	fee, err := decimal.NewFromString(getEnv("DEFAULT_SHIPPING_FEE", "50.00"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_SHIPPING_FEE: %w", err)
	}

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		StoresFile:         getEnv("STORES_FILE", ""),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "order-events"),
		Currency:           cur,
		DefaultShippingFee: fee,
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"STORE_CACHE_TTL", "10m", &cfg.StoreTTL},
		{"QUOTE_TIMEOUT", "3s", &cfg.QuoteTimeout},
		{"LOOKUP_TIMEOUT", "2s", &cfg.LookupTimeout},
		{"PERSIST_TIMEOUT", "5s", &cfg.PersistTimeout},
		{"REQUEST_TIMEOUT", "30s", &cfg.RequestTimeout},
		{"SHUTDOWN_TIMEOUT", "10s", &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = v
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
