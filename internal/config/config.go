// internal/config/config.go
//
// Environment-derived server configuration. Defaults suit local
// development; deployments override via environment variables or a .env
// file loaded by main.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv       string `env:"APP_ENV" envDefault:"development"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/hangman.db"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"hangman_token"`

	// WORDLIST_DIR points at operator-provided easy/medium/hard.txt files;
	// empty means the embedded lists.
	WordlistDir     string `env:"WORDLIST_DIR"`
	DailySalt       string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	DefaultMaxWrong int    `env:"DEFAULT_MAX_WRONG" envDefault:"6"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OfflineMode  bool   `env:"OFFLINE_MODE" envDefault:"true"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LLMEnabled reports whether generated-text features may call out to the
// completion API. Offline mode or a missing key disables them; every
// feature then runs on its local fallback.
func (c Config) LLMEnabled() bool {
	return !c.OfflineMode && c.OpenAIAPIKey != ""
}
