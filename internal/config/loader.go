package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the staff availability service.
type Config struct {
	HTTPPort        int           `yaml:"http_port"`
	MetricsAddr     string        `yaml:"metrics_addr"`
	SQLiteDSN       string        `yaml:"sqlite_dsn"`
	SessionTTL      time.Duration `yaml:"session_ttl"`
	DefaultTimezone string        `yaml:"default_timezone"`
}

// Default returns the configuration applied before file and environment
// overrides.
func Default() Config {
	return Config{
		HTTPPort:        8080,
		MetricsAddr:     "",
		SQLiteDSN:       "file:staff.db?_pragma=foreign_keys(1)",
		SessionTTL:      24 * time.Hour,
		DefaultTimezone: "Europe/Oslo",
	}
}

// Load builds the configuration from defaults, an optional YAML file
// (path taken from STAFFD_CONFIG when the argument is empty), and
// STAFFD_* environment overrides, in that order of precedence.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = strings.TrimSpace(os.Getenv("STAFFD_CONFIG"))
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("STAFFD_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "STAFFD_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if addr := strings.TrimSpace(os.Getenv("STAFFD_METRICS_ADDR")); addr != "" {
		cfg.MetricsAddr = addr
	}

	if dsn := strings.TrimSpace(os.Getenv("STAFFD_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if ttlValue := strings.TrimSpace(os.Getenv("STAFFD_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "STAFFD_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if tz := strings.TrimSpace(os.Getenv("STAFFD_DEFAULT_TIMEZONE")); tz != "" {
		cfg.DefaultTimezone = tz
	}

	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		invalid = append(invalid, "default_timezone")
	}
	if cfg.HTTPPort <= 0 {
		invalid = append(invalid, "http_port")
	}
	if cfg.SessionTTL <= 0 {
		invalid = append(invalid, "session_ttl")
	}
	if strings.TrimSpace(cfg.SQLiteDSN) == "" {
		invalid = append(invalid, "sqlite_dsn")
	}

	if len(invalid) > 0 {
		return Config{}, errors.New("config: invalid values for: " + strings.Join(invalid, ", "))
	}

	return cfg, nil
}
