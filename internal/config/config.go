// Package config loads server settings from the environment and optional .env files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the server and the terminal game.
type Config struct {
	AppEnv    string `env:"APP_ENV" envDefault:"development"`
	Port      string `env:"PORT" envDefault:"5175"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// Language is passed to the oracle and used for case mapping.
	// LexiconDSN switches the oracle to SQLite when set.
	Language       string `env:"LANGUAGE" envDefault:"en"`
	StartWordsFile string `env:"START_WORDS_FILE"`
	LexiconFile    string `env:"LEXICON_FILE"`
	LexiconDSN     string `env:"LEXICON_DSN"`

	SessionSecret string        `env:"SESSION_SECRET" envDefault:"dev_secret_change_me"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	RoundTTL      time.Duration `env:"ROUND_TTL" envDefault:"6h"`
	DailySalt     string        `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	ClientOrigin  string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
}

// LoadEnvFiles reads .env.<APP_ENV>.local, .env.<APP_ENV> and .env, in that
// order. Variables already set win; missing files are ignored.
func LoadEnvFiles() {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}
	_ = godotenv.Load(".env." + appEnv + ".local")
	_ = godotenv.Load(".env." + appEnv)
	_ = godotenv.Load()
}

// Load reads .env files and parses the environment into a Config.
func Load() (Config, error) {
	LoadEnvFiles()
	return Parse()
}

// Parse reads the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("parse env: SESSION_SECRET must not be empty")
	}
	return cfg, nil
}
