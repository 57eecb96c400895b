package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret     string
	JWTExpiration time.Duration

	ValidatorURL     string
	ValidatorTimeout time.Duration

	SweepInterval time.Duration

	BaseFee      float64
	RatePer15Min float64

	PaymentSuccessRate float64
	PaymentDelay       time.Duration
}

// Load reads the .env file if present and assembles the process
// configuration from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiration: time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,

		ValidatorURL:     getEnv("SLOT_VALIDATOR_URL", ""),
		ValidatorTimeout: time.Duration(getEnvInt("SLOT_VALIDATOR_TIMEOUT_SECONDS", 5)) * time.Second,

		SweepInterval: time.Duration(getEnvInt("SWEEP_INTERVAL_SECONDS", 60)) * time.Second,

		BaseFee:      getEnvFloat("BASE_FEE", 20.0),
		RatePer15Min: getEnvFloat("RATE_PER_15_MIN", 5.0),

		PaymentSuccessRate: getEnvFloat("PAYMENT_SUCCESS_RATE", 0.9),
		PaymentDelay:       time.Duration(getEnvInt("PAYMENT_DELAY_MS", 500)) * time.Millisecond,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %g", key, value, fallback)
		return fallback
	}
	return f
}
