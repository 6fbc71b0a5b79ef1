package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
	Party  Party  `yaml:"party"`
	OpenAI OpenAI `yaml:"openai"`
	Qdrant Qdrant `yaml:"qdrant"`
	Redis  Redis  `yaml:"redis"`
}

type OpenAI struct {
	Reply     ModelConfig `yaml:"reply" validate:"required"`
	Embedding ModelConfig `yaml:"embedding" validate:"required"`
}

type ModelConfig struct {
	// OpenAI base url
	BaseURL string `yaml:"base_url" example:"https://api.openai.com/v1" validate:"required"`
	// OpenAI token
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX" validate:"required"`
	// OpenAI model
	Model string `yaml:"model" example:"gpt-4o-mini" validate:"required"`
}

type Qdrant struct {
	// Qdrant base url
	URL string `yaml:"url" example:"https://xyz.cloud.qdrant.io:6333" validate:"required"`
	// Qdrant API key
	APIKey string `yaml:"api_key"`
	// Collection holding the venue records
	Collection string `yaml:"collection" example:"quintas" validate:"required"`
}

type Redis struct {
	// Redis address
	Addr string `yaml:"addr" example:"localhost:6379" validate:"required"`
	// Redis password
	Password string `yaml:"password"`
	// Redis database index
	DB int `yaml:"db" example:"0"`
}

type Party struct {
	// Name of the host, used in templated replies
	Host string `yaml:"host" example:"Miguel" validate:"required"`
	// Date of the party, used in the LLM base context
	EventDate string `yaml:"event_date" example:"31/12/2026" validate:"required"`
	// Path to the static guest list for the one-time import
	GuestsFile string `yaml:"guests_file" example:"data/guests.yaml"`
}

type Server struct {
	// Listen address of the HTTP API
	Addr string `yaml:"addr" example:":8080"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Server.Addr == "" {
		result.Server.Addr = ":8080"
	}
	if result.Redis.Addr == "" {
		result.Redis.Addr = "localhost:6379"
	}
	if result.Party.GuestsFile == "" {
		result.Party.GuestsFile = "data/guests.yaml"
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
