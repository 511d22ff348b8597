package config

import (
	"fmt"
	"strconv"
	"strings"

	"orca-backend/storage"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds process configuration read from the environment
type Config struct {
	Port            string
	LogMode         string
	GeminiAPIKey    string
	GeminiModel     string
	KeyPrefix       string
	RedisAddr       string
	RedisChannel    string
	CORSOrigins     []string
	AIRatePerMinute int
	AIRateBurst     int
	Storage         storage.StorageConfig
}

// envConfig is the raw environment. Numbers and lists are kept as strings so a
// malformed value falls back to its default instead of failing startup.
type envConfig struct {
	Port            string `env:"PORT" envDefault:"8080"`
	LogMode         string `env:"LOG_MODE" envDefault:"dev"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GeminiModel     string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	KeyPrefix       string `env:"STATE_KEY_PREFIX" envDefault:"orca_"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisChannel    string `env:"REDIS_CHANNEL" envDefault:"orca-notifications"`
	CORSOrigins     string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000,http://localhost:5173"`
	AIRatePerMinute string `env:"AI_RATE_PER_MINUTE"`
	AIRateBurst     string `env:"AI_RATE_BURST"`
}

// LoadDotEnv loads a .env file from the working directory or the project root.
// It reports whether a file was found.
func LoadDotEnv() bool {
	if err := godotenv.Load(); err == nil {
		return true
	}
	return godotenv.Load("../../.env") == nil
}

// Load reads the configuration from environment variables, applying defaults
func Load() (Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return Config{
		Port:            orDefault(raw.Port, "8080"),
		LogMode:         orDefault(raw.LogMode, "dev"),
		GeminiAPIKey:    strings.TrimSpace(raw.GeminiAPIKey),
		GeminiModel:     orDefault(raw.GeminiModel, "gemini-2.5-flash"),
		KeyPrefix:       orDefault(raw.KeyPrefix, "orca_"),
		RedisAddr:       strings.TrimSpace(raw.RedisAddr),
		RedisChannel:    orDefault(raw.RedisChannel, "orca-notifications"),
		CORSOrigins:     splitList(orDefault(raw.CORSOrigins, "http://localhost:3000,http://localhost:5173")),
		AIRatePerMinute: positiveInt(raw.AIRatePerMinute, 10),
		AIRateBurst:     positiveInt(raw.AIRateBurst, 3),
		Storage:         storage.ConfigFromEnv(),
	}, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func positiveInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || i <= 0 {
		return def
	}
	return i
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
