package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	BackendBaseURL string
	BackendTimeout int
	RateLimitRPS   int
	RetryAttempts  int

	EbayDomain   string
	AmazonDomain string
	DataCSVPath  string

	OutputDir string

	DealThreshold float64
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BackendBaseURL: getEnv("RADAR_BACKEND_URL", "http://localhost:5000"),
		BackendTimeout: getEnvInt("RADAR_TIMEOUT_MS", 30000),
		RateLimitRPS:   getEnvInt("RADAR_RATE_LIMIT_RPS", 5),
		RetryAttempts:  getEnvInt("RADAR_RETRY_ATTEMPTS", 5),

		EbayDomain:   getEnv("RADAR_EBAY_DOMAIN", "www.ebay.fr"),
		AmazonDomain: getEnv("RADAR_AMAZON_DOMAIN", "www.amazon.fr"),
		DataCSVPath:  getEnv("RADAR_DATA_CSV", "/data.csv"),

		OutputDir: getEnv("RADAR_OUTPUT_DIR", filepath.Join(cwd, "out")),

		DealThreshold: getEnvFloat("RADAR_DEAL_THRESHOLD", 0.8),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
