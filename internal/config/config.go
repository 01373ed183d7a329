package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx-compatible connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Redis stores Redis connection settings (auth codes, order broadcast).
type Redis struct {
	Addr string
	Pass string
	DB   int
}

// Kafka stores the order-status consumer settings. Empty brokers or
// topic disable the worker consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Auth stores login-code and token settings.
type Auth struct {
	CodeTTL   time.Duration
	JWTSecret string
	TokenTTL  time.Duration
}

// Notify stores Telegram bot delivery settings for login codes.
type Notify struct {
	BotToken    string
	APIBase     string
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Pprof stores basic-auth credentials for the debug endpoints. Empty
// credentials keep them loopback-only.
type Pprof struct {
	User string
	Pass string
}

// RateLimit stores HTTP rate limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Config stores all service settings.
type Config struct {
	Port      int
	DB        DB
	Redis     Redis
	Kafka     Kafka
	Auth      Auth
	Notify    Notify
	Pprof     Pprof
	RateLimit RateLimit
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := FromEnv(os.Getenv)

	if !pflag.Parsed() {
		pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
		pflag.Parse()
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	return cfg, nil
}

// FromEnv builds a Config from the given environment lookup, falling
// back to defaults for anything unset.
func FromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		Port:      DefaultPort(),
		DB:        DefaultDB(),
		Redis:     DefaultRedis(),
		Kafka:     DefaultKafka(),
		Auth:      DefaultAuth(),
		Notify:    DefaultNotify(),
		Pprof:     DefaultPprof(),
		RateLimit: DefaultRateLimit(),
	}

	cfg.Port = envInt(getenv, "PORT", cfg.Port)

	cfg.DB.Host = envStr(getenv, "DB_HOST", cfg.DB.Host)
	cfg.DB.Port = envStr(getenv, "DB_PORT", cfg.DB.Port)
	cfg.DB.User = envStr(getenv, "DB_USER", cfg.DB.User)
	cfg.DB.Pass = envStr(getenv, "DB_PASS", cfg.DB.Pass)
	cfg.DB.Name = envStr(getenv, "DB_NAME", cfg.DB.Name)

	cfg.Redis.Addr = envStr(getenv, "REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Pass = envStr(getenv, "REDIS_PASS", cfg.Redis.Pass)
	cfg.Redis.DB = envInt(getenv, "REDIS_DB", cfg.Redis.DB)

	if v := getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.Topic = envStr(getenv, "KAFKA_ORDER_STATUS_TOPIC", cfg.Kafka.Topic)
	cfg.Kafka.GroupID = envStr(getenv, "KAFKA_GROUP_ID", cfg.Kafka.GroupID)

	cfg.Auth.CodeTTL = envDur(getenv, "AUTH_CODE_TTL", cfg.Auth.CodeTTL)
	cfg.Auth.JWTSecret = envStr(getenv, "JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTL = envDur(getenv, "AUTH_TOKEN_TTL", cfg.Auth.TokenTTL)

	cfg.Notify.BotToken = envStr(getenv, "TELEGRAM_BOT_TOKEN", cfg.Notify.BotToken)
	cfg.Notify.APIBase = envStr(getenv, "TELEGRAM_API_BASE", cfg.Notify.APIBase)

	cfg.Pprof.User = envStr(getenv, "PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envStr(getenv, "PPROF_PASS", cfg.Pprof.Pass)

	cfg.RateLimit.Enabled = envBool(getenv, "RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.Rate = envFloat(getenv, "RATE_LIMIT_RATE", cfg.RateLimit.Rate)
	cfg.RateLimit.Burst = envInt(getenv, "RATE_LIMIT_BURST", cfg.RateLimit.Burst)

	return cfg
}

func envStr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(getenv func(string) string, key string, def int) int {
	if v := getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(getenv func(string) string, key string, def float64) float64 {
	if v := getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envBool(getenv func(string) string, key string, def bool) bool {
	if v := getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDur(getenv func(string) string, key string, def time.Duration) time.Duration {
	if v := getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
