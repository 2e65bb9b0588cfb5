package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"storefront/pkg/database"

	"go.uber.org/zap"
)

type Config struct {
	HTTPPort string
	GRPCPort string

	DB      DB
	Redis   Redis
	Kafka   Kafka
	JWT     JWT
	Stripe  Stripe
	Catalog Catalog
}

type DB struct {
	database.Config
}

type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
	CartTTL  time.Duration
}

type Kafka struct {
	Brokers     []string
	OrdersTopic string
}

type JWT struct {
	AccessSecret string
	Issuer       string
	Audience     string
}

type Stripe struct {
	Enabled    bool
	APIKey     string
	Currency   string
	SuccessURL string
	CancelURL  string
	Locale     string
}

type Catalog struct {
	PlaceholderImage string
	DefaultPageSize  int
}

func Load(log *zap.Logger) *Config {
	return &Config{
		HTTPPort: getEnvDefault("HTTP_PORT", ":8080"),
		GRPCPort: getEnvDefault("GRPC_PORT", ":9090"),
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnvDefault("DB_SSLMODE", "disable"),
			},
		},
		Redis: Redis{
			Enabled:  getEnvDefault("REDIS_ENABLED", "false") == "true",
			Addr:     getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       atoiDefault(os.Getenv("REDIS_DB"), 0),
			CacheTTL: parseDuration(os.Getenv("CATALOG_CACHE_TTL"), time.Minute),
			CartTTL:  parseDuration(os.Getenv("CART_TTL"), 7*24*time.Hour),
		},
		Kafka: Kafka{
			Brokers:     splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			OrdersTopic: getEnvDefault("KAFKA_TOPIC_ORDERS", "storefront.orders"),
		},
		JWT: JWT{
			AccessSecret: getEnv("JWT_ACCESS_SECRET", log),
			Issuer:       getEnv("JWT_ISSUER", log),
			Audience:     getEnv("JWT_AUDIENCE", log),
		},
		Stripe: Stripe{
			Enabled:    getEnvDefault("STRIPE_ENABLED", "false") == "true",
			APIKey:     os.Getenv("STRIPE_API_KEY"),
			Currency:   getEnvDefault("STRIPE_CURRENCY", "ars"),
			SuccessURL: getEnvDefault("CHECKOUT_SUCCESS_URL", "http://localhost:5173/checkout/success"),
			CancelURL:  getEnvDefault("CHECKOUT_CANCEL_URL", "http://localhost:5173/checkout/cancel"),
			Locale:     getEnvDefault("CHECKOUT_LOCALE", "es"),
		},
		Catalog: Catalog{
			PlaceholderImage: getEnvDefault("CATALOG_PLACEHOLDER_IMAGE", "/images/placeholder.png"),
			DefaultPageSize:  atoiDefault(os.Getenv("CATALOG_PAGE_SIZE"), 12),
		},
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// parseDuration понимает стандартный формат time.ParseDuration и суффикс "d" (дни).
func parseDuration(s string, def time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if strings.HasSuffix(s, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return def
		}
		return time.Duration(n) * 24 * time.Hour
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
