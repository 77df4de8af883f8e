package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config aggregates application configuration loaded from environment
// variables. Mongo and Kafka are optional: without them the service runs on
// in-memory storage with outbox events kept local, which is the mode the
// test suites use.
type Config struct {
	Env                string
	HTTPAddr           string
	CORSOrigins        []string
	MongoURI           string
	MongoDB            string
	KafkaBrokers       []string
	KafkaTopicPrefix   string
	SessionTTL         time.Duration
	IdempotencyTTL     time.Duration
	OutboxPollInterval time.Duration
	CompletionInterval time.Duration
	BcryptCost         int
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "stays"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
	}

	origins := getEnv("CORS_ORIGINS", "http://localhost:3000")
	for _, raw := range strings.Split(origins, ",") {
		if v := strings.TrimSpace(raw); v != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, v)
		}
	}

	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	sessionTTL, err := parseDurationEnv("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTL = sessionTTL

	idempotencyTTL, err := parseDurationEnv("IDEMP_TTL", 168*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.IdempotencyTTL = idempotencyTTL

	poll, err := parseDurationEnv("OUTBOX_POLL_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return Config{}, err
	}
	cfg.OutboxPollInterval = poll

	completion, err := parseDurationEnv("COMPLETION_SWEEP_INTERVAL", time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.CompletionInterval = completion

	cost, err := parseIntEnv("BCRYPT_COST", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.BcryptCost = cost

	return cfg, nil
}

// UseMongo reports whether persistent storage is configured.
func (c Config) UseMongo() bool { return c.MongoURI != "" }

// UseKafka reports whether outbox events should be published to a broker.
func (c Config) UseKafka() bool { return len(c.KafkaBrokers) > 0 }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	var v int
	if _, err := fmt.Sscanf(raw, "%d", &v); err != nil {
		return 0, fmt.Errorf("invalid %s integer: %q", key, raw)
	}
	return v, nil
}
