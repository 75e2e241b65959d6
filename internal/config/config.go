// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"petsapp/internal/shared"

	"github.com/BurntSushi/toml"
)

var sizeRegex = regexp.MustCompile(`(?i)^(\d+)\s*(K|M|G|T)?B?$`)

// Config holds the application's configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Cache    CacheConfig    `toml:"cache"`
	Logging  LoggingConfig  `toml:"logging"`

	CacheTTL        time.Duration `toml:"-"` // Runtime computed value
	LogMaxSizeBytes int64         `toml:"-"` // Runtime computed value
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	Path          string `toml:"path"`
	BusyTimeoutMs int    `toml:"busy_timeout_ms"`
}

// CacheConfig holds the read cache configuration.
type CacheConfig struct {
	TTL string `toml:"ttl"` // e.g. "30s", "5m"; "0" (default) disables
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	File         string `toml:"file"`     // empty logs to stderr
	MaxSize      string `toml:"max_size"` // e.g. "10MB"
	MaxFiles     int    `toml:"max_files"`
	AuditEnabled bool   `toml:"audit_enabled"`
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
// Used by `petsapp config init`.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trying to save the config: %w", shared.ErrorCreateFile)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("trying to save the config: %w", shared.ErrorEncodeFile)
	}
	return nil
}

// ParseAndValidate processes configuration strings into runtime values.
// It sets defaults if values are missing and parses human-readable sizes and durations.
func (c *Config) ParseAndValidate() error {
	if c.Cache.TTL == "" {
		// Off unless asked for: other processes may change the file under a cached row.
		c.Cache.TTL = "0"
	}
	ttl, err := shared.ParseDuration(c.Cache.TTL)
	if err != nil {
		return fmt.Errorf("invalid cache ttl: %w", err)
	}
	c.CacheTTL = ttl

	if c.Logging.MaxSize == "" {
		c.Logging.MaxSize = "10MB"
	}
	sizeBytes, err := parseSize(c.Logging.MaxSize)
	if err != nil {
		return fmt.Errorf("invalid logging max_size: %w", err)
	}
	c.LogMaxSizeBytes = sizeBytes

	if c.Logging.MaxFiles < 0 {
		return fmt.Errorf("invalid logging max_files: %d", c.Logging.MaxFiles)
	}
	if c.Database.BusyTimeoutMs < 0 {
		return fmt.Errorf("invalid database busy_timeout_ms: %d", c.Database.BusyTimeoutMs)
	}

	return nil
}

// parseSize parses a size string (e.g., "100G", "500MB") into bytes.
func parseSize(sizeStr string) (int64, error) {
	matches := sizeRegex.FindStringSubmatch(strings.TrimSpace(sizeStr))

	if len(matches) < 2 {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number: %s", matches[1])
	}

	unit := ""
	if len(matches) > 2 {
		unit = strings.ToUpper(matches[2])
	}

	switch unit {
	case "T":
		return value * (1 << 40), nil
	case "G":
		return value * (1 << 30), nil
	case "M":
		return value * (1 << 20), nil
	case "K":
		return value * (1 << 10), nil
	default:
		return value, nil
	}
}
