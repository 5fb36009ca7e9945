// internal/config/config.go
// Loader konfigurasi dari environment variables (caarlos0/env).

package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"

	"dca-oilgas/internal/dca"
)

type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"dca-oilgas"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	AppPort  string `env:"APP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	APIKey   string `env:"API_KEY"` // kosong = /api tanpa proteksi

	DB struct {
		Driver   string `env:"DRIVER" envDefault:"mysql"` // mysql|sqlite
		Host     string `env:"HOST" envDefault:"localhost"`
		Port     string `env:"PORT" envDefault:"3306"`
		Name     string `env:"DB" envDefault:"dca"`
		User     string `env:"USER" envDefault:"root"`
		Password string `env:"PASSWORD"`
		Path     string `env:"PATH" envDefault:"dca.db"` // sqlite file
		MaxOpen  int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdle  int    `env:"MAX_IDLE_CONNS" envDefault:"5"`
	} `envPrefix:"MYSQL_"`

	LLM struct {
		APIKey  string `env:"OPENAI_API_KEY"`
		APIBase string `env:"OPENAI_API_BASE" envDefault:"https://api.openai.com/v1"`
		Model   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	}

	DCA struct {
		DefaultB             float64 `env:"DEFAULT_B" envDefault:"0.65"`
		DefaultHorizonMonths int     `env:"DEFAULT_HORIZON_MONTHS" envDefault:"12"`
		MaxHorizonMonths     int     `env:"MAX_HORIZON_MONTHS" envDefault:"1200"`
		ZeroRateMode         string  `env:"ZERO_RATE_MODE" envDefault:"substitute"` // substitute|exclude
		ZeroRateSentinel     float64 `env:"ZERO_RATE_SENTINEL" envDefault:"1"`
	} `envPrefix:"DCA_"`

	Dataset struct {
		Source          string        `env:"SOURCE" envDefault:"csv"` // csv|db
		CSV             string        `env:"CSV"`
		Encoding        string        `env:"ENCODING" envDefault:"latin1"` // latin1|utf8
		RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`             // 0 = tanpa refresh
	} `envPrefix:"DATASET_"`

	Admin struct {
		User      string `env:"USER" envDefault:"admin"`
		PassHash  string `env:"PASS_HASH"`
		JWTSecret string `env:"JWT_SECRET"`
	} `envPrefix:"ADMIN_"`
}

// Load membaca env; error parsing (mis. DCA_DEFAULT_B bukan angka) dikembalikan.
func Load() (*Config, error) {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.LLM.APIKey == "" {
		log.Println("[WARN] OPENAI_API_KEY is not set, forecast summaries use the built-in template")
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.DCA.DefaultB < 0 || c.DCA.DefaultB > 1 {
		return fmt.Errorf("DCA_DEFAULT_B must be within [0, 1], got %v", c.DCA.DefaultB)
	}
	if c.DCA.DefaultHorizonMonths < 0 {
		return fmt.Errorf("DCA_DEFAULT_HORIZON_MONTHS must be >= 0, got %d", c.DCA.DefaultHorizonMonths)
	}
	if c.DCA.MaxHorizonMonths < 1 || c.DCA.MaxHorizonMonths > dca.HorizonCeilingMonths {
		return fmt.Errorf("DCA_MAX_HORIZON_MONTHS must be within [1, %d], got %d", dca.HorizonCeilingMonths, c.DCA.MaxHorizonMonths)
	}
	if c.DCA.DefaultHorizonMonths > c.DCA.MaxHorizonMonths {
		return fmt.Errorf("DCA_DEFAULT_HORIZON_MONTHS (%d) exceeds DCA_MAX_HORIZON_MONTHS (%d)", c.DCA.DefaultHorizonMonths, c.DCA.MaxHorizonMonths)
	}
	if _, err := c.ZeroRatePolicy().Validate(); err != nil {
		return err
	}
	switch c.Dataset.Source {
	case "csv", "db":
	default:
		return fmt.Errorf("DATASET_SOURCE must be csv or db, got %q", c.Dataset.Source)
	}
	switch c.DB.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("MYSQL_DRIVER must be mysql or sqlite, got %q", c.DB.Driver)
	}
	return nil
}

func (c *Config) ZeroRatePolicy() dca.ZeroRatePolicy {
	return dca.ZeroRatePolicy{Mode: dca.ZeroRateMode(c.DCA.ZeroRateMode), Sentinel: c.DCA.ZeroRateSentinel}
}
