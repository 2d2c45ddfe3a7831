package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/korjavin/lppositions/uniswap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "missing api key fails closed",
			env:     map[string]string{"ALCHEMY_API_KEY": ""},
			wantErr: ErrMissingAPIKey,
		},
		{
			name: "defaults",
			env:  map[string]string{"ALCHEMY_API_KEY": "test-key"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "test-key", cfg.AlchemyAPIKey)
				assert.Equal(t, DefaultAlchemyBaseURL, cfg.AlchemyBaseURL)
				assert.Equal(t, DefaultDBPath, cfg.DBPath)
				assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
				assert.True(t, cfg.MockFallback)
				assert.False(t, cfg.Debug)
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"ALCHEMY_API_KEY":  "k",
				"ALCHEMY_BASE_URL": "http://localhost:8545/v2",
				"HTTP_TIMEOUT":     "5s",
				"MOCK_FALLBACK":    "false",
				"DB_PATH":          "/tmp/wallets.db",
				"TELEGRAM_TOKEN":   "bot-token",
				"DEBUG":            "true",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://localhost:8545/v2", cfg.AlchemyBaseURL)
				assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
				assert.False(t, cfg.MockFallback)
				assert.Equal(t, "/tmp/wallets.db", cfg.DBPath)
				assert.Equal(t, "bot-token", cfg.TelegramToken)
				assert.True(t, cfg.Debug)
			},
		},
		{
			name: "invalid timeout",
			env: map[string]string{
				"ALCHEMY_API_KEY": "k",
				"HTTP_TIMEOUT":    "soon",
			},
			wantErr: assert.AnError,
		},
		{
			name: "invalid base url",
			env: map[string]string{
				"ALCHEMY_API_KEY":  "k",
				"ALCHEMY_BASE_URL": "ftp://example.com",
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			switch {
			case tt.wantErr == assert.AnError:
				assert.Error(t, err)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("ALCHEMY_API_KEY", "")
	os.Unsetenv("ALCHEMY_API_KEY")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ALCHEMY_API_KEY=from-file\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.AlchemyAPIKey)
}

func TestDefaultBaseURLMatchesClient(t *testing.T) {
	assert.Equal(t, uniswap.DefaultNFTAPIBaseURL, DefaultAlchemyBaseURL)
}

func TestValidateBot(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.ValidateBot(), ErrMissingTelegramToken)

	cfg.TelegramToken = "token"
	assert.NoError(t, cfg.ValidateBot())
}
