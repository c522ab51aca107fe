// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every runtime knob, sourced from environment variables.
// cmd/server loads .env via godotenv autoload before this is read.
type Config struct {
	Port string

	// RedisAddr empty means the in-memory store is used.
	RedisAddr  string
	RedisDB    int
	SessionTTL time.Duration

	// Postgres archival of finished sessions; enabled when PGHost is set.
	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string

	SubmitWindow time.Duration
	GraceWindow  time.Duration
	ResultsHold  time.Duration
	PollCeiling  time.Duration

	TargetFactor      float64
	DefaultSubmission int
	MinNumber         int
	MaxNumber         int
	DefaultRounds     int

	WebAppURL string
}

// Load reads the environment and validates the game parameters.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		SessionTTL: time.Duration(getEnvInt("SESSION_TTL_SEC", 0)) * time.Second,

		PGHost:     os.Getenv("PG_HOST"),
		PGPort:     getEnv("PG_PORT", "5432"),
		PGUser:     os.Getenv("POSTGRES_USER"),
		PGPassword: os.Getenv("POSTGRES_PASSWORD"),
		PGDatabase: os.Getenv("PG_DATABASE"),

		SubmitWindow: time.Duration(getEnvInt("SUBMIT_WINDOW_SEC", 20)) * time.Second,
		GraceWindow:  time.Duration(getEnvInt("GRACE_SEC", 10)) * time.Second,
		ResultsHold:  time.Duration(getEnvInt("RESULTS_SEC", 15)) * time.Second,
		PollCeiling:  time.Duration(getEnvInt("STATUS_POLL_CEILING_SEC", 25)) * time.Second,

		TargetFactor:      getEnvFloat("TARGET_FACTOR", 0.8),
		DefaultSubmission: getEnvInt("DEFAULT_SUBMISSION", 10),
		MinNumber:         getEnvInt("MIN_NUMBER", 0),
		MaxNumber:         getEnvInt("MAX_NUMBER", 100),
		DefaultRounds:     getEnvInt("DEFAULT_ROUNDS", 3),

		WebAppURL: getEnv("WEB_APP_URL", "https://numbersgame.app/game"),
	}

	if cfg.TargetFactor <= 0 || cfg.TargetFactor > 1 {
		return nil, fmt.Errorf("TARGET_FACTOR must be in (0, 1], got %v", cfg.TargetFactor)
	}
	if cfg.MinNumber >= cfg.MaxNumber {
		return nil, fmt.Errorf("MIN_NUMBER (%d) must be below MAX_NUMBER (%d)", cfg.MinNumber, cfg.MaxNumber)
	}
	if cfg.DefaultSubmission < cfg.MinNumber || cfg.DefaultSubmission > cfg.MaxNumber {
		return nil, fmt.Errorf("DEFAULT_SUBMISSION (%d) outside valid range [%d, %d]",
			cfg.DefaultSubmission, cfg.MinNumber, cfg.MaxNumber)
	}
	if cfg.SubmitWindow <= 0 || cfg.GraceWindow <= 0 || cfg.ResultsHold <= 0 {
		return nil, fmt.Errorf("round windows must be positive durations")
	}
	return cfg, nil
}

// ArchivalEnabled reports whether Postgres result archival is configured.
func (c *Config) ArchivalEnabled() bool {
	return c.PGHost != ""
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getEnvFloat(key string, def float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
