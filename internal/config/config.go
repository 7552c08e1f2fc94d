package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the engine needs to run on a device.
type Config struct {
	BackendBaseURL string
	AuthToken      string
	DeviceID       string

	TripsFilePath  string
	PhotoQueuePath string

	RefreshInterval time.Duration
	RequestTimeout  time.Duration

	RetryTimes        int
	RetryInitialDelay time.Duration
	RetryFactor       float64
	RetryMaxDelay     time.Duration

	PickUpAllowed bool

	KafkaBrokers   []string
	KafkaTopic     string
	TrackingStdout bool
}

// Load reads the environment, trying .env files in the working directory
// and up to two parent directories first.
func Load() (*Config, error) {
	loadEnv()

	cfg := &Config{
		BackendBaseURL: os.Getenv("BACKEND_BASE_URL"),
		AuthToken:      os.Getenv("BACKEND_AUTH_TOKEN"),
		DeviceID:       os.Getenv("DEVICE_ID"),

		TripsFilePath:  envOr("TRIPS_FILE_PATH", "data/trips.json"),
		PhotoQueuePath: envOr("PHOTO_QUEUE_PATH", "data/photo-queue"),

		RefreshInterval: envDuration("REFRESH_INTERVAL", 5*time.Minute),
		RequestTimeout:  envDuration("REQUEST_TIMEOUT", 30*time.Second),

		RetryTimes:        envInt("UPLOAD_RETRY_TIMES", 3),
		RetryInitialDelay: envDuration("UPLOAD_RETRY_INITIAL_DELAY", time.Second),
		RetryFactor:       envFloat("UPLOAD_RETRY_FACTOR", 10.0),
		RetryMaxDelay:     envDuration("UPLOAD_RETRY_MAX_DELAY", 30*time.Second),

		PickUpAllowed: envBool("PICKUP_ALLOWED", true),

		KafkaTopic:     envOr("KAFKA_TOPIC", "tracking_markers"),
		TrackingStdout: envBool("TRACKING_STDOUT", false),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if cfg.BackendBaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is not set")
	}
	if cfg.DeviceID == "" {
		return nil, fmt.Errorf("DEVICE_ID is not set")
	}

	return cfg, nil
}

func loadEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			return
		}
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
