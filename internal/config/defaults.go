package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "express_db",
}

var defaultRedis = Redis{
	Addr: "127.0.0.1:6379",
}

var defaultKafka = Kafka{
	Topic:   "order-status-events",
	GroupID: "express-worker",
}

var defaultAuth = Auth{
	CodeTTL:  5 * time.Minute,
	TokenTTL: 24 * time.Hour,
}

var defaultNotify = Notify{
	APIBase:     "https://api.telegram.org",
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

var defaultPprof = Pprof{}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default port.
func DefaultPort() int { return defaultPort }

// DefaultDB returns the default database settings.
func DefaultDB() DB { return defaultDB }

// DefaultRedis returns the default Redis settings.
func DefaultRedis() Redis { return defaultRedis }

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka { return defaultKafka }

// DefaultAuth returns the default auth settings.
func DefaultAuth() Auth { return defaultAuth }

// DefaultNotify returns the default notification settings.
func DefaultNotify() Notify { return defaultNotify }

// DefaultPprof returns the default pprof settings.
func DefaultPprof() Pprof { return defaultPprof }

// DefaultRateLimit returns the default rate limiter settings.
func DefaultRateLimit() RateLimit { return defaultRateLimit }
