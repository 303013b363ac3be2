package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string `env:"APP_ENV" env-default:"development"`
	FrontendURL string `env:"FRONTEND_URL" env-default:"http://localhost:5173"`

	Server  ServerConfig
	Storage StorageConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" env-default:"3000"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"120s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type StorageConfig struct {
	UploadDir     string        `env:"UPLOAD_DIR" env-default:"uploads"`
	ProcessedDir  string        `env:"PROCESSED_DIR" env-default:"processed"`
	MaxFileAge    time.Duration `env:"MAX_FILE_AGE" env-default:"30m"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" env-default:"10m"`
}

// Load reads configuration from the environment, with an optional .env
// file loaded first. A missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return &cfg, nil
}

// IsProduction gates the permissive localhost CORS rule.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
