// Package config provides configuration loading from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Pagination defaults
const (
	DefaultResultsPerPage  = 5
	DefaultRequestPageSize = 25
)

// Cache defaults
const (
	DefaultSearchCacheCapacity   = 50
	DefaultVolunteerCacheMaxSize = 512
)

// Highlighting defaults
const (
	DefaultHighlightWidth = 56
	DefaultMaxOccurrences = 4
)

// Config holds all configuration for the bot.
type Config struct {
	DiscordToken   string // DISCORD_TOKEN (required)
	DiscordGuildID string // DISCORD_GUILD_ID, default "" (global command registration)

	BlossomBaseURL    string        // BLOSSOM_BASE_URL, default "https://grafeas.org/api"
	BlossomAPIKey     string        // BLOSSOM_API_KEY
	HTTPClientTimeout time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 10000ms (10s)

	ResultsPerPage  int // RESULTS_PER_PAGE, default 5
	RequestPageSize int // REQUEST_PAGE_SIZE, default 25

	SearchCacheCapacity   int // SEARCH_CACHE_CAPACITY, default 50
	VolunteerCacheMaxSize int // VOLUNTEER_CACHE_MAX_SIZE, default 512

	HighlightWidth int // HIGHLIGHT_WIDTH, default 56
	MaxOccurrences int // MAX_OCCURRENCES, default 4

	Locale string // LOCALE, default "en_US"

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		DiscordToken:   getEnvString("DISCORD_TOKEN", ""),
		DiscordGuildID: getEnvString("DISCORD_GUILD_ID", ""),

		BlossomBaseURL:    getEnvString("BLOSSOM_BASE_URL", "https://grafeas.org/api"),
		BlossomAPIKey:     getEnvString("BLOSSOM_API_KEY", ""),
		HTTPClientTimeout: getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 10000),

		ResultsPerPage:  getEnvInt("RESULTS_PER_PAGE", DefaultResultsPerPage),
		RequestPageSize: getEnvInt("REQUEST_PAGE_SIZE", DefaultRequestPageSize),

		SearchCacheCapacity:   getEnvInt("SEARCH_CACHE_CAPACITY", DefaultSearchCacheCapacity),
		VolunteerCacheMaxSize: getEnvInt("VOLUNTEER_CACHE_MAX_SIZE", DefaultVolunteerCacheMaxSize),

		HighlightWidth: getEnvInt("HIGHLIGHT_WIDTH", DefaultHighlightWidth),
		MaxOccurrences: getEnvInt("MAX_OCCURRENCES", DefaultMaxOccurrences),

		Locale: getEnvString("LOCALE", "en_US"),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// Validate checks the configuration for values the bot cannot start with.
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN must be set")
	}
	if c.ResultsPerPage <= 0 {
		return fmt.Errorf("RESULTS_PER_PAGE must be positive, got %d", c.ResultsPerPage)
	}
	if c.RequestPageSize < c.ResultsPerPage {
		return fmt.Errorf("REQUEST_PAGE_SIZE (%d) must not be smaller than RESULTS_PER_PAGE (%d)",
			c.RequestPageSize, c.ResultsPerPage)
	}
	if c.RequestPageSize%c.ResultsPerPage != 0 {
		return fmt.Errorf("REQUEST_PAGE_SIZE (%d) must be a multiple of RESULTS_PER_PAGE (%d)",
			c.RequestPageSize, c.ResultsPerPage)
	}
	if c.SearchCacheCapacity <= 0 {
		return fmt.Errorf("SEARCH_CACHE_CAPACITY must be positive, got %d", c.SearchCacheCapacity)
	}
	if c.VolunteerCacheMaxSize <= 0 {
		return fmt.Errorf("VOLUNTEER_CACHE_MAX_SIZE must be positive, got %d", c.VolunteerCacheMaxSize)
	}
	return nil
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
