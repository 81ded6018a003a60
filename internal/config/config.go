package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	APIBaseURL  string        // upstream jobs API, ex: https://api.sarkaridakiya.in/api
	HTTPTimeout time.Duration // timeout on upstream calls (default: 10s)
	SeedFile    string        // path to the listings seed YAML (optional, empty = start empty)
	DemoLogin   bool          // accept the fixed demo accounts when the upstream is unreachable

	AllowedOrigins []string // CORS origins for the browser client

	// Login rate limit
	LoginRateLimit  int // attempts per window per client IP (0 = disabled)
	LoginRateWindow time.Duration
	TrustProxy      bool // true => trust X-Forwarded-For headers

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts
}

func Load() *Config {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("DAKIYA_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("DAKIYA_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("DAKIYA_LOG_LEVEL", "info"),
		PrettyLog: mustBool("DAKIYA_PRETTY_LOG", true),

		// Upstream jobs API
		APIBaseURL:  requireEnv("DAKIYA_API_BASE_URL"),
		HTTPTimeout: mustDuration("DAKIYA_HTTP_TIMEOUT", 10*time.Second),
		SeedFile:    getenv("DAKIYA_SEED_FILE", ""), // Optional, empty = no seeded listings
		DemoLogin:   mustBool("DAKIYA_DEMO_LOGIN", false),

		AllowedOrigins: splitAndTrim(getenv("DAKIYA_ALLOWED_ORIGINS", "http://localhost:5173")),

		// Login rate limit
		LoginRateLimit:  getenvInt("DAKIYA_LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: mustDuration("DAKIYA_LOGIN_RATE_WINDOW", time.Minute),
		TrustProxy:      mustBool("DAKIYA_TRUST_PROXY", false),

		// Redis settings
		RedisAddr:             requireEnv("DAKIYA_REDIS_ADDR"),
		RedisUser:             getenv("DAKIYA_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("DAKIYA_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("DAKIYA_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("DAKIYA_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: DAKIYA_REDIS_PASSWORD is required when DAKIYA_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic("❌ FATAL: Required environment variable " + key + " is not set")
	}
	return v
}

func requireEnvInt(key string) int {
	v := requireEnv(key)
	i, err := strconv.Atoi(v)
	if err != nil {
		panic("❌ FATAL: Invalid integer value for " + key + ": " + v)
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
