package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	BotToken       string
	DatabasePath   string
	AdminsFile     string
	AdminsReload   time.Duration
	UpdateTimeout  int
	TransportDebug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		DatabasePath:   getEnv("DATABASE_PATH", "orders.db"),
		AdminsFile:     getEnv("ADMINS_FILE", "admins.yaml"),
		AdminsReload:   time.Duration(getEnvAsInt("ADMINS_RELOAD_SEC", 30)) * time.Second,
		UpdateTimeout:  getEnvAsInt("UPDATE_TIMEOUT", 60),
		TransportDebug: getEnvAsBool("TRANSPORT_DEBUG", false),
	}
	if cfg.BotToken == "" {
		return nil, errors.New("BOT_TOKEN is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getEnvAsBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
