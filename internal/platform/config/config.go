package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultRedisURL is used when REDIS_URL is unset.
const DefaultRedisURL = "redis://localhost:6379/0"

// Server captures HTTP server level configuration.
type Server struct {
	Addr       string
	AdminToken string
	LogLevel   string
	LogFormat  string

	DatabaseURL    string
	CredentialsKey string

	Redis     RedisConfig
	Providers ProvidersConfig
	Audit     AuditConfig

	// PANResultCacheTTL bounds how long provider answers are reused. Zero disables caching.
	PANResultCacheTTL time.Duration
}

// RedisConfig configures the key-value cache connection.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ProvidersConfig holds the external PAN provider endpoints.
type ProvidersConfig struct {
	NSDLBaseURL   string
	UnisenBaseURL string
	Timeout       time.Duration
	MaxRetries    int

	// BreakerThreshold consecutive outages open a provider's circuit for
	// BreakerCooldown. Zero disables the breaker.
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// CallBudget is the longest a provider call may take across all attempts,
// with a second of backoff allowance per retry.
func (p ProvidersConfig) CallBudget() time.Duration {
	retries := time.Duration(max(p.MaxRetries, 0))
	return p.Timeout*(retries+1) + retries*time.Second
}

// AuditConfig selects the audit sink. An empty broker list keeps audit in the logs.
type AuditConfig struct {
	KafkaBrokers []string
	KafkaTopic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	adminToken := os.Getenv("ADMIN_API_TOKEN")
	if adminToken == "" {
		// Use a default for development - should be overridden in production
		adminToken = "dev-admin-token"
	}

	return Server{
		Addr:           envOr("SERVER_ADDR", ":8080"),
		AdminToken:     adminToken,
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogFormat:      envOr("LOG_FORMAT", "json"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		CredentialsKey: os.Getenv("CREDENTIALS_KEY"),
		Redis: RedisConfig{
			URL:          envOr("REDIS_URL", DefaultRedisURL),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 0),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Providers: ProvidersConfig{
			NSDLBaseURL:   envOr("NSDL_BASE_URL", "https://nsdl.example.invalid"),
			UnisenBaseURL: envOr("UNISEN_BASE_URL", "https://unisen.example.invalid"),
			Timeout:       envDuration("PROVIDER_TIMEOUT", 10*time.Second),
			MaxRetries:    envInt("PROVIDER_MAX_RETRIES", 2),

			BreakerThreshold: envInt("PROVIDER_BREAKER_THRESHOLD", 5),
			BreakerCooldown:  envDuration("PROVIDER_BREAKER_COOLDOWN", 30*time.Second),
		},
		Audit: AuditConfig{
			KafkaBrokers: envList("AUDIT_KAFKA_BROKERS"),
			KafkaTopic:   envOr("AUDIT_KAFKA_TOPIC", "plugin-audit"),
		},
		PANResultCacheTTL: envDuration("PAN_RESULT_CACHE_TTL", 10*time.Minute),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
