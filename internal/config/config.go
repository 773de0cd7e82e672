package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	HTTPPort         string
	HoldingsFile     string
	YahooURL         string
	GoogleFinanceURL string
	RequestTimeout   time.Duration
	ScrapeDelay      time.Duration
	QuoteRetryMax    int
	Extractor        string
	SpreadsheetID    string
	SheetsCredsJSON  string
	ExportInterval   time.Duration
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is merged in first when present.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	return Config{
		HTTPPort:         envOrDefault("HTTP_PORT", "8080"),
		HoldingsFile:     envOrDefault("HOLDINGS_FILE", "data.json"),
		YahooURL:         envOrDefault("YAHOO_URL", "https://query1.finance.yahoo.com"),
		GoogleFinanceURL: envOrDefault("GOOGLE_FINANCE_URL", "https://www.google.com"),
		RequestTimeout:   envOrDefaultDuration("REQUEST_TIMEOUT", 10*time.Second),
		ScrapeDelay:      envOrDefaultDuration("SCRAPE_DELAY", 100*time.Millisecond),
		QuoteRetryMax:    envOrDefaultInt("QUOTE_RETRY_MAX", 2),
		Extractor:        envOrDefault("EXTRACTOR", "label"),
		SpreadsheetID:    envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		SheetsCredsJSON:  envOrDefault("SHEETS_CREDENTIALS_JSON", ""),
		ExportInterval:   envOrDefaultDuration("EXPORT_INTERVAL", 24*time.Hour),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
