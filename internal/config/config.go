package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string

	// Authorize.Net credentials. Missing values are reported by the gateway
	// at payment time, not here.
	APILoginID     string
	TransactionKey string
	Live           bool
	Capture        bool
	Timeout        time.Duration

	JWTSecret         string
	InternalSecretKey string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		AppEnv:            os.Getenv("APP_ENV"),
		APILoginID:        os.Getenv("ANET_API_LOGIN_ID"),
		TransactionKey:    os.Getenv("ANET_TRANSACTION_KEY"),
		Live:              getBool("ANET_LIVE", false),
		Capture:           getBool("ANET_CAPTURE", true),
		Timeout:           getDuration("ANET_TIMEOUT", 30*time.Second),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		InternalSecretKey: os.Getenv("INTERNAL_SECRET_KEY"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
