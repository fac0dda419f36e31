package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidConfig is returned when a parsed value is out of its allowed set.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the central typed configuration struct.
type Config struct {
	App        AppConfig
	HTTP       HTTPConfig
	Log        LogConfig
	Validation ValidationConfig
}

type AppConfig struct {
	Name  string `env:"APP_NAME" envDefault:"PayloadValidator" validate:"required"`
	Env   string `env:"APP_ENV" envDefault:"local" validate:"oneof=local testing production"` // local | testing | production
	Debug bool   `env:"APP_DEBUG" envDefault:"true"`
	Port  string `env:"APP_PORT" envDefault:"8000" validate:"required,numeric"`
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s" validate:"gt=0"`
	MaxBodyBytes    int64         `env:"HTTP_MAX_BODY_BYTES" envDefault:"1048576" validate:"gt=0"`
}

// LogConfig leaves Level and Format empty to derive them from the app
// settings: debug level when APP_DEBUG is on, JSON output in production.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT" validate:"omitempty,oneof=text json"`
}

type ValidationConfig struct {
	DocsURL string `env:"VALIDATION_DOCS_URL" envDefault:"https://gist.github.com/massivebrains/ccfa887ac62e74f19ddae5844b9d0bac" validate:"omitempty,url"`
}

// Load reads each .env file that exists (earlier files win, missing ones are
// skipped) and populates a Config from environment variables.
// Call once at bootstrap: cfg, err := config.Load()
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		// Non-fatal: .env may not exist in production
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrParsingConfig, file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
		if cfg.App.Debug {
			cfg.Log.Level = "debug"
		}
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
		if cfg.IsProduction() {
			cfg.Log.Format = "json"
		}
	}
	return &cfg, nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad(envFiles ...string) *Config {
	cfg, err := Load(envFiles...)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

// Addr is the listen address derived from APP_PORT.
func (c *Config) Addr() string { return ":" + c.App.Port }

func (c *Config) IsProduction() bool { return c.App.Env == "production" }
