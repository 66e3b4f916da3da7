package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string

	DeepSeekAPIKey  string
	DeepSeekBaseURL string
	DeepSeekModel   string
	OracleTimeout   time.Duration

	LeadsWebhookURL   string
	LeadsWebhookToken string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

// Load reads all env vars and builds the config
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		DeepSeekAPIKey:  getEnv("DEEPSEEK_API_KEY", ""),
		DeepSeekBaseURL: getEnv("DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1"),
		DeepSeekModel:   getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
		OracleTimeout:   getDurationEnv("ORACLE_TIMEOUT", 15*time.Second),

		LeadsWebhookURL:   getEnv("LEADS_WEBHOOK_URL", ""),
		LeadsWebhookToken: getEnv("LEADS_WEBHOOK_TOKEN", ""),
	}
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if c.DeepSeekAPIKey == "" {
		return errors.New("DEEPSEEK_API_KEY is not set")
	}
	return nil
}
