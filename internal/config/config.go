package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server ServerConfig
	GitHub GitHubConfig
	OpenAI OpenAIConfig
}

type ServerConfig struct {
	Port           string        `envconfig:"SERVER_PORT" default:"8080"`
	Host           string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout    time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout   time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"120s"`
	RequestTimeout time.Duration `envconfig:"SERVER_REQUEST_TIMEOUT" default:"120s"`
}

type GitHubConfig struct {
	Token       string        `envconfig:"GITHUB_TOKEN" required:"true"`
	APIEndpoint string        `envconfig:"GITHUB_API_ENDPOINT" default:"https://api.github.com/"`
	Timeout     time.Duration `envconfig:"GITHUB_TIMEOUT" default:"30s"`

	// MaxSourceBytes caps the concatenated source text sent to the model.
	// Zero disables the ceiling.
	MaxSourceBytes int `envconfig:"GITHUB_MAX_SOURCE_BYTES" default:"786432"`
}

type OpenAIConfig struct {
	Provider       string `envconfig:"OPENAI_PROVIDER" default:"openai"`
	APIKey         string `envconfig:"OPENAI_API_KEY" required:"true"`
	APIEndpoint    string `envconfig:"OPENAI_ENDPOINT" default:"https://api.openai.com/v1"`
	Model          string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	DeploymentName string `envconfig:"OPENAI_DEPLOYMENT" default:"gpt-4o"`
	APIVersion     string `envconfig:"OPENAI_API_VERSION" default:"2023-05-15"`
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	// envconfig's required tag only catches unset variables; an empty
	// credential must fail startup just the same.
	if cfg.GitHub.Token == "" {
		return nil, errors.New("GITHUB_TOKEN must not be empty")
	}
	if cfg.OpenAI.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY must not be empty")
	}

	slog.Info("configuration loaded successfully")
	return &cfg, nil
}
