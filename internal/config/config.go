// Package config defines the raisegate configuration and its validation.
package config

import (
	"fmt"
	"strings"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by RAISEGATE_* environment
// variables.
type Config struct {
	DealMaker DealMakerConfig `toml:"dealmaker"`
	Redis     RedisConfig     `toml:"redis"`
	Server    ServerConfig    `toml:"server"`
	Notify    NotifyConfig    `toml:"notify"`
	LogLevel  string          `toml:"log_level"`
}

// DealMakerConfig holds the capital-raise platform endpoints and credentials.
type DealMakerConfig struct {
	APIBase      string `toml:"api_base"`
	TokenURL     string `toml:"token_url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	DealID       string `toml:"deal_id"`
}

// Configured reports whether the live integration can be used: the client
// id, client secret, AND deal id must all be present. Absence of any one
// disables every live path and the backend serves the fallback config.
func (d DealMakerConfig) Configured() bool {
	return d.ClientID != "" && d.ClientSecret != "" && d.DealID != ""
}

// RedisConfig holds parameters for the optional shared token cache. When
// Enabled is false the backend uses its in-process cache.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
	APIKey      string   `toml:"api_key"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	Events            []string `toml:"events"`
}

// Defaults returns a Config populated with reasonable default values.
func Defaults() Config {
	return Config{
		DealMaker: DealMakerConfig{
			APIBase:  "https://app.dealmaker.tech/api/v1",
			TokenURL: "https://app.dealmaker.tech/oauth/token",
		},
		Redis: RedisConfig{
			Enabled:  false,
			Addr:     "localhost:6379",
			PoolSize: 10,
		},
		Server: ServerConfig{
			Port:        8080,
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Notify: NotifyConfig{
			Events: []string{"investor_created", "investor_updated"},
		},
		LogLevel: "info",
	}
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	// DealMaker — credentials are all-or-nothing. A partially configured
	// integration is almost always a deployment mistake, so reject it
	// instead of silently serving the fallback forever.
	id := c.DealMaker.ClientID != ""
	secret := c.DealMaker.ClientSecret != ""
	deal := c.DealMaker.DealID != ""
	if (id || secret || deal) && !(id && secret && deal) {
		errs = append(errs, "dealmaker: client_id, client_secret, and deal_id must all be set together")
	}
	if c.DealMaker.APIBase == "" {
		errs = append(errs, "dealmaker: api_base must not be empty")
	}
	if c.DealMaker.TokenURL == "" {
		errs = append(errs, "dealmaker: token_url must not be empty")
	}

	// Redis
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr must not be empty when enabled")
		}
		if c.Redis.PoolSize < 1 {
			errs = append(errs, "redis: pool_size must be >= 1")
		}
	}

	// Server
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
	}

	// Notify — Telegram needs both the token and the chat id.
	tgToken := c.Notify.TelegramToken != ""
	tgChat := c.Notify.TelegramChatID != ""
	if tgToken != tgChat {
		errs = append(errs, "notify: telegram_token and telegram_chat_id must be set together")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
