package predictionguard

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig("key", "")
	assert.Equal(t, DefaultURL, cfg.URL)
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantField string
	}{
		{name: "valid", cfg: NewConfig("key", "https://api.example.com")},
		{name: "missing key", cfg: NewConfig("", DefaultURL), wantField: "APIKey"},
		{name: "key with newline", cfg: NewConfig("bad\nkey", DefaultURL), wantField: "APIKey"},
		{name: "missing url", cfg: Config{APIKey: "key"}, wantField: "URL"},
		{name: "bad scheme", cfg: NewConfig("key", "ftp://example.com"), wantField: "URL"},
		{name: "unparsable url", cfg: NewConfig("key", "http://[::1"), wantField: "URL"},
		{
			name:      "negative timeout",
			cfg:       Config{APIKey: "key", URL: DefaultURL, Timeout: -time.Second},
			wantField: "Timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{APIKey: "key", URL: "https://api.example.com/"}.withDefaults()
	assert.Equal(t, "https://api.example.com", cfg.URL)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PREDICTIONGUARD_API_KEY", "env-key")
	t.Setenv("PREDICTIONGUARD_URL", "https://env.example.com")
	t.Setenv("PREDICTIONGUARD_TIMEOUT", "10s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "https://env.example.com", cfg.URL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	// .env values are exported to the process; t.Setenv restores them.
	t.Setenv("PREDICTIONGUARD_API_KEY", "")
	t.Setenv("PREDICTIONGUARD_URL", "")
	os.Unsetenv("PREDICTIONGUARD_API_KEY")
	os.Unsetenv("PREDICTIONGUARD_URL")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PREDICTIONGUARD_API_KEY=file-key\nPREDICTIONGUARD_URL=https://file.example.com\n"), 0o600))

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"), path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "https://file.example.com", cfg.URL)
}

func TestLoadConfig_MissingKey(t *testing.T) {
	t.Setenv("PREDICTIONGUARD_API_KEY", "")
	os.Unsetenv("PREDICTIONGUARD_API_KEY")

	_, err := LoadConfig()
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr), "want *ConfigError, got %v", err)
}
