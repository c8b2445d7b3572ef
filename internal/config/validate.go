package config

import (
	"fmt"
	"time"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// A missing or malformed site key yields a *domain.ConfigurationError.
func (c *Config) Validate() error {
	key, err := domain.ParseSiteKey(c.Site.KeyRaw)
	if err != nil {
		return err
	}
	c.Site.Key = key

	loc, err := time.LoadLocation(c.Site.Timezone)
	if err != nil {
		return &domain.ConfigurationError{Key: "SITE_TIMEZONE", Reason: err.Error()}
	}
	c.Site.Location = loc

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be within [0, max_conns] (got %d)", c.Database.MinConns)
	}

	if err := c.Chat.validate(); err != nil {
		return fmt.Errorf("chat: %w", err)
	}

	if c.RateLimit.ChatPerMinute <= 0 {
		return fmt.Errorf("rate_limit.chat_per_minute must be > 0 (got %d)", c.RateLimit.ChatPerMinute)
	}
	if c.RateLimit.ChatBurst <= 0 {
		return fmt.Errorf("rate_limit.chat_burst must be > 0 (got %d)", c.RateLimit.ChatBurst)
	}

	return nil
}

func (c *ChatConfig) validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be within [0, 1] (got %v)", c.Temperature)
	}
	if c.MaxHistory <= 0 {
		return fmt.Errorf("max_history must be > 0 (got %d)", c.MaxHistory)
	}
	return nil
}
