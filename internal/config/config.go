package config

import (
	"time"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Site      SiteConfig      `yaml:"site"`
	Auth      AuthConfig      `yaml:"auth"`
	Chat      ChatConfig      `yaml:"chat"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Redis     RedisConfig     `yaml:"redis"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`

	// StatementTimeout is sent as the session statement_timeout; zero disables it.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"5s"`
}

// SiteConfig identifies the tenant this process serves.
type SiteConfig struct {
	KeyRaw   string `yaml:"key"      env:"SITE_KEY"`
	Timezone string `yaml:"timezone" env:"SITE_TIMEZONE" env-default:"UTC"`

	// Key is parsed from KeyRaw during validation.
	Key domain.SiteKey `yaml:"-" env:"-"`
	// Location is loaded from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// AuthConfig holds admin authentication settings.
type AuthConfig struct {
	JWTSecret         string        `yaml:"jwt_secret"          env:"AUTH_JWT_SECRET"          env-required:"true"`
	JWTIssuer         string        `yaml:"jwt_issuer"          env:"AUTH_JWT_ISSUER"          env-default:"twin"`
	AccessTokenTTL    time.Duration `yaml:"access_token_ttl"    env:"AUTH_ACCESS_TOKEN_TTL"    env-default:"12h"`
	AdminPasswordHash string        `yaml:"admin_password_hash" env:"AUTH_ADMIN_PASSWORD_HASH"`
	PasswordHashCost  int           `yaml:"password_hash_cost"  env:"AUTH_PASSWORD_HASH_COST"  env-default:"12"`
}

// ChatConfig holds settings for the LLM chat relay.
type ChatConfig struct {
	APIKey       string        `yaml:"api_key"       env:"CHAT_API_KEY"`
	BaseURL      string        `yaml:"base_url"      env:"CHAT_BASE_URL"`
	Model        string        `yaml:"model"         env:"CHAT_MODEL"         env-default:"claude-3-5-sonnet-latest"`
	MaxTokens    int64         `yaml:"max_tokens"    env:"CHAT_MAX_TOKENS"    env-default:"500"`
	Temperature  float64       `yaml:"temperature"   env:"CHAT_TEMPERATURE"   env-default:"0.7"`
	MaxHistory   int           `yaml:"max_history"   env:"CHAT_MAX_HISTORY"   env-default:"20"`
	Timeout      time.Duration `yaml:"timeout"       env:"CHAT_TIMEOUT"       env-default:"45s"`
	SystemPrompt string        `yaml:"system_prompt" env:"CHAT_SYSTEM_PROMPT" env-default:"You are the digital twin of the site owner. Answer briefly, precisely and without small talk. Prefer structure and first principles."`
}

// Enabled reports whether an upstream API key is configured.
func (c ChatConfig) Enabled() bool {
	return c.APIKey != ""
}

// RateLimitConfig holds request limits for the chat endpoint.
type RateLimitConfig struct {
	ChatPerMinute int `yaml:"chat_per_minute" env:"RATE_LIMIT_CHAT_PER_MINUTE" env-default:"10"`
	ChatBurst     int `yaml:"chat_burst"      env:"RATE_LIMIT_CHAT_BURST"      env-default:"3"`
}

// RedisConfig enables a shared rate limiter when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
