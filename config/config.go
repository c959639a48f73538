package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const ENV_FILE_PATH string = ".env"

type Config struct {
	Port           string        `env:"PORT" env-default:"5000"`
	ConnString     string        `env:"MONGODB_CONNSTRING"`
	Database       string        `env:"MONGODB_DATABASE" env-default:"booking-service"`
	Collection     string        `env:"MONGODB_COLLECTION" env-default:"bookings"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" env-default:"5s"`
	AllowOrigins   string        `env:"CORS_ALLOW_ORIGINS" env-default:"*"`
	LogLevel       string        `env:"LOG_LEVEL" env-default:"info"`
}

// Load reads the optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(ENV_FILE_PATH); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot read %v: %w", ENV_FILE_PATH, err)
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
