// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"

	"golang.org/x/text/language"

	"github.com/usestring/artifact-mcp/internal/logging"
	"github.com/usestring/artifact-mcp/pkg/layout"
)

// Limit defaults
const (
	DefaultLayoutCacheMaxItems = 256
	DefaultRenderWorkers       = 4
	DefaultMaxBatchItems       = 100
	DefaultMaxPayloadBytes     = 4_000_000
)

// Config holds all configuration for the server and CLI.
type Config struct {
	// Formatting
	CurrencySymbol string // CURRENCY_SYMBOL, default "₹"
	FormatLanguage string // FORMAT_LANGUAGE, default "en"
	TableMaxRows   int    // TABLE_MAX_ROWS, default 10

	// Processing
	LayoutCacheMaxItems int // LAYOUT_CACHE_MAX_ITEMS, default 256
	RenderWorkers       int // RENDER_WORKERS, default 4
	MaxBatchItems       int // MAX_BATCH_ITEMS, default 100
	MaxPayloadBytes     int // MAX_PAYLOAD_BYTES, default 4_000_000

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		CurrencySymbol: getEnvString("CURRENCY_SYMBOL", layout.DefaultCurrencySymbol),
		FormatLanguage: getEnvString("FORMAT_LANGUAGE", "en"),
		TableMaxRows:   getEnvInt("TABLE_MAX_ROWS", layout.DefaultMaxRows),

		LayoutCacheMaxItems: getEnvInt("LAYOUT_CACHE_MAX_ITEMS", DefaultLayoutCacheMaxItems),
		RenderWorkers:       getEnvInt("RENDER_WORKERS", DefaultRenderWorkers),
		MaxBatchItems:       getEnvInt("MAX_BATCH_ITEMS", DefaultMaxBatchItems),
		MaxPayloadBytes:     getEnvInt("MAX_PAYLOAD_BYTES", DefaultMaxPayloadBytes),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// Language parses FormatLanguage, falling back to English on a bad tag.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.FormatLanguage)
	if err != nil {
		return language.English
	}
	return tag
}

// GeneratorOptions returns the layout options implied by the formatting settings.
func (c *Config) GeneratorOptions() []layout.Option {
	return []layout.Option{
		layout.WithCurrencySymbol(c.CurrencySymbol),
		layout.WithLanguage(c.Language()),
		layout.WithMaxRows(c.TableMaxRows),
	}
}

// Logging returns the logging settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		FilePath:   c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
		Compress:   c.LogCompress,
	}
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
