package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr  string
	DatabaseURL string
	// TimerTick is the length of one battle countdown tick.
	TimerTick time.Duration
	Dev       bool
}

// Load reads configuration from the environment, preferring a local
// .env file when present.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:  getenv("LISTEN_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		TimerTick:   time.Second,
		Dev:         os.Getenv("DEV") != "",
	}
	if raw := os.Getenv("TIMER_TICK"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.TimerTick = d
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
