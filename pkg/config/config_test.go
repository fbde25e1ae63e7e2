package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/selfie-sender/pkg/domain"
	"github.com/dskvich/selfie-sender/pkg/imagegen"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(map[string]string{})
	require.NoError(t, err)

	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "https://api.minimax.io/v1/image_generation", cfg.ImageAPIURL)
	assert.Equal(t, "image-01", cfg.ImageModel)
	assert.Equal(t, domain.ProviderMiniMax, cfg.ImageProvider)
	assert.Equal(t, imagegen.DefaultReferenceImageURL, cfg.ReferenceImageURL)
	assert.Equal(t, "http://localhost:18789", cfg.GatewayURL)
	assert.Empty(t, cfg.GatewayToken)
	assert.Equal(t, "openclaw", cfg.GatewayCLI)
	assert.Equal(t, 60*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30*time.Second, cfg.CLITimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, domain.DefaultCaption, cfg.DefaultCaption)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"IMAGE_API_KEY":  "key",
		"IMAGE_PROVIDER": "openai",
		"GATEWAY_URL":    "http://gateway:9000",
		"GATEWAY_TOKEN":  "gw",
		"HTTP_TIMEOUT":   "5s",
		"LOG_LEVEL":      "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, domain.ProviderOpenAI, cfg.ImageProvider)
	assert.Equal(t, "http://gateway:9000", cfg.GatewayURL)
	assert.Equal(t, "gw", cfg.GatewayToken)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown provider", map[string]string{"IMAGE_PROVIDER": "stable"}},
		{"bad duration", map[string]string{"HTTP_TIMEOUT": "soon"}},
		{"zero timeout", map[string]string{"CLI_TIMEOUT": "0s"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.env)
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("IMAGE_API_KEY=from-dotenv\nGATEWAY_CLI=gw\n"), 0600))

	t.Setenv("IMAGE_API_KEY", "")
	os.Unsetenv("IMAGE_API_KEY")
	t.Setenv("GATEWAY_CLI", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.APIKey)
	assert.Equal(t, "from-env", cfg.GatewayCLI, "existing env wins over dotenv")
}

func TestLoad_MissingDotenv(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}
