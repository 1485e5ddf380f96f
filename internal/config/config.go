package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries everything the server reads from the environment.
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	UploadDir       string        `env:"UPLOAD_DIR" envDefault:"./uploads"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	SeedSamples     bool          `env:"SEED_SAMPLES" envDefault:"true"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
