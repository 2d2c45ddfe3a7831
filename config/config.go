package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/korjavin/lppositions/uniswap"
	"github.com/spf13/viper"
)

var (
	// ErrMissingAPIKey means ALCHEMY_API_KEY is not set. There is no built-in fallback key.
	ErrMissingAPIKey = errors.New("ALCHEMY_API_KEY environment variable is required")
	// ErrMissingTelegramToken means TELEGRAM_TOKEN is not set
	ErrMissingTelegramToken = errors.New("TELEGRAM_TOKEN environment variable is required")
)

const (
	DefaultAlchemyBaseURL = uniswap.DefaultNFTAPIBaseURL
	DefaultDBPath         = "./data.db"
	DefaultHTTPTimeout    = 30 * time.Second
)

type Config struct {
	AlchemyAPIKey  string        `mapstructure:"alchemy_api_key"`
	AlchemyBaseURL string        `mapstructure:"alchemy_base_url"`
	TelegramToken  string        `mapstructure:"telegram_token"`
	DBPath         string        `mapstructure:"db_path"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	MockFallback   bool          `mapstructure:"mock_fallback"`
	Debug          bool          `mapstructure:"debug"`
}

// Load reads configuration from the environment, after loading the given
// .env files when they exist.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		// A missing .env file is not an error
		_ = godotenv.Load(f)
	}

	v := viper.New()
	defaults := map[string]interface{}{
		"alchemy_base_url": DefaultAlchemyBaseURL,
		"db_path":          DefaultDBPath,
		"http_timeout":     DefaultHTTPTimeout,
		"mock_fallback":    true,
		"debug":            false,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	// Keys without a default are only seen by Unmarshal once bound
	for _, key := range []string{"alchemy_api_key", "telegram_token"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.AlchemyAPIKey = strings.TrimSpace(cfg.AlchemyAPIKey)

	return cfg, cfg.Validate()
}

// Validate checks the settings every binary needs
func (c *Config) Validate() error {
	if c.AlchemyAPIKey == "" {
		return ErrMissingAPIKey
	}
	parsed, err := url.Parse(c.AlchemyBaseURL)
	if err != nil || !strings.HasPrefix(parsed.Scheme, "http") {
		return fmt.Errorf("invalid ALCHEMY_BASE_URL %q", c.AlchemyBaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// ValidateBot additionally checks the Telegram settings
func (c *Config) ValidateBot() error {
	if c.TelegramToken == "" {
		return ErrMissingTelegramToken
	}
	return nil
}
