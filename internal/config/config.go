package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required"`
	Port        int    `env:"PORT" envDefault:"8080"`

	// Connection pool bounds
	DBMaxConns int32 `env:"DB_MAX_CONNS" envDefault:"16"`
	DBMinConns int32 `env:"DB_MIN_CONNS" envDefault:"2"`

	// AI providers. A missing key degrades that provider's calls to a
	// user-visible error, never a startup failure.
	OpenAIKey   string `env:"OPENAI_API_KEY"`
	GroqKey     string `env:"GROQ_API_KEY"`
	GoogleAIKey string `env:"GOOGLE_AI_API_KEY"`

	// Per-provider default models
	OpenAIModel string `env:"OPENAI_MODEL" envDefault:"gpt-4"`
	GroqModel   string `env:"GROQ_MODEL" envDefault:"mixtral-8x7b-32768"`
	GeminiModel string `env:"GOOGLE_AI_MODEL" envDefault:"gemini-pro"`

	// Uploaded pitch decks are stored under this directory, keyed
	// pitch-deck-<timestamp>-<filename>.
	PitchDeckDir string `env:"PITCH_DECK_DIR" envDefault:"pitch-decks"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
