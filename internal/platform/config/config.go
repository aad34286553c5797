package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything main needs to wire the server.
type Config struct {
	Addr          string
	JWTSigningKey string

	// Ledger identities, 0x-prefixed hex. Parsed and validated in main.
	OwnerAddress string
	VenueAddress string

	Audit AuditConfig
	Redis RedisConfig
}

// AuditConfig selects the journal backend and optional kafka fan-out.
type AuditConfig struct {
	// Backend is one of "memory", "redis", "postgres".
	Backend     string
	PostgresDSN string

	// KafkaBrokers enables the kafka sink when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	// InboxSize bounds the async journal queue.
	InboxSize int
}

// RedisConfig captures go-redis client settings.
type RedisConfig struct {
	URL          string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:          envOr("TICKETD_ADDR", ":8080"),
		JWTSigningKey: envOr("TICKETD_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		OwnerAddress:  os.Getenv("TICKETD_OWNER_ADDRESS"),
		VenueAddress:  os.Getenv("TICKETD_VENUE_ADDRESS"),
		Audit: AuditConfig{
			Backend:     envOr("TICKETD_AUDIT_BACKEND", "memory"),
			PostgresDSN: os.Getenv("TICKETD_AUDIT_POSTGRES_DSN"),
			KafkaTopic:  envOr("TICKETD_AUDIT_KAFKA_TOPIC", "ticketd.audit"),
			InboxSize:   1024,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("TICKETD_REDIS_URL"),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
	if brokers := os.Getenv("TICKETD_AUDIT_KAFKA_BROKERS"); brokers != "" {
		cfg.Audit.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
