package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DataDir string // directory holding the SQLite database file

	FetchTimeout    time.Duration // per-request timeout for content fetching
	ClassifyTimeout time.Duration // per-request timeout for classifier HTTP calls

	// Cloud AI provider (OpenAI-compatible chat completions)
	CloudEndpoint string
	CloudModel    string
	CloudAPIKey   string // empty = cloud classification disabled

	// Local AI provider (AnythingLLM-style chat endpoint)
	LocalEndpoint string // empty = local classification disabled
	LocalAPIKey   string
	PreferLocal   bool // try the local provider before the cloud one

	RulesFile string // optional YAML overriding the heuristic rules

	// Redis classification cache (optional, empty addr = disabled)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration
	RedisRetryInterval  time.Duration
	RedisMaxWait        time.Duration
	RedisPingTimeout    time.Duration
	RedisWarnThreshold  int
	CacheTTL            time.Duration
}

func Load() *Config {
	return &Config{
		// Server settings
		ListenPort:      getenv("GMARK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("GMARK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("GMARK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("GMARK_PRETTY_LOG", true),

		// Storage
		DataDir: getenv("GMARK_DATA_DIR", "./data"),

		// Pipeline timeouts
		FetchTimeout:    mustDuration("GMARK_FETCH_TIMEOUT", 10*time.Second),
		ClassifyTimeout: mustDuration("GMARK_CLASSIFY_TIMEOUT", 10*time.Second),

		// Cloud provider
		CloudEndpoint: getenv("GMARK_OPENAI_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
		CloudModel:    getenv("GMARK_OPENAI_MODEL", "gpt-4o-mini"),
		CloudAPIKey:   getenv("GMARK_OPENAI_API_KEY", ""),

		// Local provider
		LocalEndpoint: getenv("GMARK_ANYTHINGLLM_ENDPOINT", ""),
		LocalAPIKey:   getenv("GMARK_ANYTHINGLLM_API_KEY", ""),
		PreferLocal:   mustBool("GMARK_PREFER_LOCAL", true),

		RulesFile: getenv("GMARK_RULES_FILE", ""),

		// Redis cache settings
		RedisAddr:           getenv("GMARK_REDIS_ADDR", ""),
		RedisUser:           getenv("GMARK_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("GMARK_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("GMARK_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("GMARK_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("GMARK_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("GMARK_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("GMARK_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("GMARK_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("GMARK_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("GMARK_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("GMARK_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("GMARK_REDIS_WARN_THRESHOLD", 3),
		CacheTTL:            mustDuration("GMARK_CACHE_TTL", 24*time.Hour),
	}
}

// CacheEnabled reports whether the Redis classification cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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
