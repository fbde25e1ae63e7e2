package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/dskvich/selfie-sender/pkg/domain"
)

type Config struct {
	APIKey            string               `env:"IMAGE_API_KEY"`
	ImageAPIURL       string               `env:"IMAGE_API_URL" envDefault:"https://api.minimax.io/v1/image_generation"`
	ImageModel        string               `env:"IMAGE_MODEL" envDefault:"image-01"`
	ImageProvider     domain.ImageProvider `env:"IMAGE_PROVIDER" envDefault:"minimax"`
	ReferenceImageURL string               `env:"REFERENCE_IMAGE_URL" envDefault:"https://cdn.jsdelivr.net/gh/SumeLabs/clawra@main/assets/clawra.png"`
	OpenAIToken       string               `env:"OPENAI_TOKEN"`
	OpenAIBaseURL     string               `env:"OPENAI_BASE_URL"`
	GatewayURL        string               `env:"GATEWAY_URL" envDefault:"http://localhost:18789"`
	GatewayToken      string               `env:"GATEWAY_TOKEN"`
	GatewayCLI        string               `env:"GATEWAY_CLI" envDefault:"openclaw"`
	TelegramBotToken  string               `env:"TELEGRAM_BOT_TOKEN"`
	HTTPTimeout       time.Duration        `env:"HTTP_TIMEOUT" envDefault:"60s"`
	CLITimeout        time.Duration        `env:"CLI_TIMEOUT" envDefault:"30s"`
	LogLevel          slog.Level           `env:"LOG_LEVEL" envDefault:"info"`
	DefaultCaption    string               `env:"DEFAULT_CAPTION" envDefault:"Here's my selfie"`
}

// Load reads optional dotenv files into the process environment and parses
// the config from it. Missing dotenv files are not an error.
func Load(dotenvFiles ...string) (*Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading dotenv: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Parse builds the config from an explicit environment instead of the process one.
func Parse(environment map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks settings that are wrong regardless of which transport runs.
// Credentials are checked by the components that use them.
func (c *Config) Validate() error {
	switch c.ImageProvider {
	case domain.ProviderMiniMax, domain.ProviderOpenAI:
	default:
		return fmt.Errorf("unknown image provider %q", c.ImageProvider)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if c.CLITimeout <= 0 {
		return fmt.Errorf("CLI_TIMEOUT must be positive, got %s", c.CLITimeout)
	}
	return nil
}
