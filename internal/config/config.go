package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port             string `env:"PORT" envDefault:"8080"`
	Env              string `env:"ENV" envDefault:"development"`
	DatabaseURL      string `env:"DATABASE_URL"`
	LeagueConfigPath string `env:"LEAGUE_CONFIG" envDefault:"config/league.yaml"`
	DefaultTimerSec  int    `env:"DRAFT_DEFAULT_TIMER_SEC" envDefault:"5"`
	InactiveTimerSec int    `env:"DRAFT_INACTIVE_TIMER_SEC" envDefault:"2"`
}

// Load reads configuration from the environment, preloading a .env file when
// one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DefaultTimerSec < 1 || cfg.InactiveTimerSec < 1 {
		return Config{}, fmt.Errorf("timer seconds must be >= 1")
	}
	return cfg, nil
}
