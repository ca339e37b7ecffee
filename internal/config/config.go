package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config holds the application settings read from the environment
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig

	// Give every user scope its own scores; when off all answers share one score per word
	PerUserScores bool `env:"PER_USER_SCORES" envDefault:"true"`
	// Number of lowest scoring words the next word is drawn from
	SelectionWindow int `env:"SELECTION_WINDOW" envDefault:"10"`

	EnableScheduler bool          `env:"ENABLE_SCHEDULER" envDefault:"true"`
	StatsInterval   time.Duration `env:"STATS_INTERVAL" envDefault:"1h"`

	TelegramToken string `env:"TELEGRAM_BOT_TOKEN"`
}

// DatabaseConfig selects the store backend
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite3"`
	// File path for sqlite3, connection string for postgres
	DSN string `env:"DB_DSN" envDefault:"data/words.db"`
}

// HTTPConfig configures the JSON API server
type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:"localhost:5000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads the optional dotenv files (".env" when none are given) and
// parses the environment into a validated Config.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return parse(env.Options{})
}

// FromMap builds a Config from explicit variables instead of the process environment
func FromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges the env tags cannot express
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("DB_DSN must not be empty")
	}
	if c.SelectionWindow < 1 {
		return fmt.Errorf("SELECTION_WINDOW must be positive, got %d", c.SelectionWindow)
	}
	if c.StatsInterval <= 0 {
		return fmt.Errorf("STATS_INTERVAL must be positive, got %s", c.StatsInterval)
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.HTTP.ShutdownTimeout)
	}
	return nil
}
