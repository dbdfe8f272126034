// Package config loads the client's credentials and endpoint settings from
// the environment, following the teacher's env-driven FixApp.Config shape
// (fixclient/fixapp.go's Config struct) generalized to the REST+streaming
// transports this library actually speaks, and the original reference's
// dotenv-backed get_env_or_default loader (original_source/src/config.rs).
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Credentials are the triple the platform requires to log in, plus an
// optional preferred account to switch to immediately after login.
type Credentials struct {
	Username         string
	Password         string
	APIKey           string
	PreferredAccount string
}

// RestAPI holds REST transport settings.
type RestAPI struct {
	BaseURL string
	Timeout int // seconds
}

// Stream holds the push-channel transport settings.
type Stream struct {
	URL               string
	ReconnectInterval int // seconds
}

// Database holds the persistence helper's sqlite settings.
type Database struct {
	Path string
}

// TxLoop holds the (out-of-core, ambient) transaction-history polling loop
// settings, adapted from the original's sleep_hours/page_size/days_to_look_back.
type TxLoop struct {
	IntervalHours int
	PageSize      int
	DaysLookback  int
}

// Config is the fully resolved process configuration, loaded once at start.
type Config struct {
	Credentials           Credentials
	RestAPI               RestAPI
	Stream                Stream
	Database              Database
	TxLoop                TxLoop
	RateLimitSafetyMargin float64
	LogLevel              string
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithField("env", key).WithField("value", v).Warn("failed to parse integer env var, using default")
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logrus.WithField("env", key).WithField("value", v).Warn("failed to parse float env var, using default")
		return def
	}
	return f
}

// Load reads a .env file if present (missing file is not an error) and
// resolves Config from the environment, applying the documented defaults
// from SPEC_FULL.md §6.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("no .env file loaded")
	}

	safety := getEnvFloat("IG_RATE_LIMIT_SAFETY_MARGIN", 0.5)
	if safety < 0.1 {
		safety = 0.1
	}
	if safety > 1.0 {
		safety = 1.0
	}

	cfg := &Config{
		Credentials: Credentials{
			Username:         getEnv("IG_USERNAME", ""),
			Password:         getEnv("IG_PASSWORD", ""),
			APIKey:           getEnv("IG_API_KEY", ""),
			PreferredAccount: getEnv("IG_ACCOUNT_ID", ""),
		},
		RestAPI: RestAPI{
			BaseURL: getEnv("IG_REST_BASE_URL", "https://demo-api.ig.com/gateway/deal"),
			Timeout: getEnvInt("IG_REST_TIMEOUT", 30),
		},
		Stream: Stream{
			URL:               getEnv("IG_WS_URL", "wss://demo-apd.marketdatasystems.com"),
			ReconnectInterval: getEnvInt("IG_WS_RECONNECT_INTERVAL", 5),
		},
		Database: Database{
			Path: getEnv("DATABASE_URL", "./ig-client.db"),
		},
		TxLoop: TxLoop{
			IntervalHours: getEnvInt("TX_LOOP_INTERVAL_HOURS", 4),
			PageSize:      getEnvInt("TX_PAGE_SIZE", 20),
			DaysLookback:  getEnvInt("TX_DAYS_LOOKBACK", 7),
		},
		RateLimitSafetyMargin: safety,
		LogLevel:              getEnv("LOGLEVEL", "info"),
	}

	if cfg.Credentials.Username == "" {
		logrus.Warn("IG_USERNAME not set")
	}
	if cfg.Credentials.Password == "" {
		logrus.Warn("IG_PASSWORD not set")
	}
	if cfg.Credentials.APIKey == "" {
		logrus.Warn("IG_API_KEY not set")
	}

	return cfg
}
