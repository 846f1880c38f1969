package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Addr string `env:"SEMITAE_ADDR" envDefault:":8080"`

	// Storage; empty DSN falls back to the in-memory store.
	DatabaseDSN   string `env:"SEMITAE_DB_DSN"`
	MigrationsDir string `env:"SEMITAE_MIGRATIONS_DIR" envDefault:"./migrations"`

	// Generative capability
	OpenAIAPIKey   string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL  string        `env:"OPENAI_BASE_URL"`
	OpenAIModel    string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	TextGenTimeout time.Duration `env:"TEXTGEN_TIMEOUT" envDefault:"30s"`

	// Generation tuning
	GenTemperature float64 `env:"GENERATION_TEMPERATURE" envDefault:"0.7"`
	GenMaxTokens   int     `env:"GENERATION_MAX_TOKENS" envDefault:"256"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
