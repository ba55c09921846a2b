package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load merges the TOML configuration file at path (when it exists) on top of
// the built-in defaults, then applies environment variable overrides. A
// missing file is not an error: env-only deployments are common for this
// service. The returned Config has NOT been validated; the caller should
// invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known RAISEGATE_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject secrets at deploy time without touching the TOML
// file. The bare DEALMAKER_* names used by earlier deployments are honored as
// compatibility aliases.
func applyEnvOverrides(cfg *Config) {
	// ── DealMaker ──
	setStr(&cfg.DealMaker.APIBase, "DEALMAKER_API_URL") // compatibility alias
	setStr(&cfg.DealMaker.APIBase, "RAISEGATE_DEALMAKER_API_BASE")
	setStr(&cfg.DealMaker.TokenURL, "RAISEGATE_DEALMAKER_TOKEN_URL")
	setStr(&cfg.DealMaker.ClientID, "DEALMAKER_CLIENT_ID") // compatibility alias
	setStr(&cfg.DealMaker.ClientID, "RAISEGATE_DEALMAKER_CLIENT_ID")
	setStr(&cfg.DealMaker.ClientSecret, "DEALMAKER_CLIENT_SECRET") // compatibility alias
	setStr(&cfg.DealMaker.ClientSecret, "RAISEGATE_DEALMAKER_CLIENT_SECRET")
	setStr(&cfg.DealMaker.DealID, "DEALMAKER_DEAL_ID") // compatibility alias
	setStr(&cfg.DealMaker.DealID, "RAISEGATE_DEALMAKER_DEAL_ID")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "RAISEGATE_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "RAISEGATE_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "RAISEGATE_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "RAISEGATE_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "RAISEGATE_REDIS_POOL_SIZE")
	setBool(&cfg.Redis.TLSEnabled, "RAISEGATE_REDIS_TLS_ENABLED")

	// ── Server ──
	setInt(&cfg.Server.Port, "RAISEGATE_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "RAISEGATE_SERVER_CORS_ORIGINS")
	setStr(&cfg.Server.APIKey, "RAISEGATE_SERVER_API_KEY")

	// ── Notify ──
	setStr(&cfg.Notify.DiscordWebhookURL, "RAISEGATE_NOTIFY_DISCORD_WEBHOOK_URL")
	setStr(&cfg.Notify.TelegramToken, "RAISEGATE_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "RAISEGATE_NOTIFY_TELEGRAM_CHAT_ID")
	setStringSlice(&cfg.Notify.Events, "RAISEGATE_NOTIFY_EVENTS")

	// ── Top-level ──
	setStr(&cfg.LogLevel, "RAISEGATE_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
