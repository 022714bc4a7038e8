package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds client configuration.
type Config struct {
	// APIURL is the base URL of the course-generation backend.
	// Default: "http://localhost:8000".
	APIURL string

	// Timeout bounds a single backend request. Default: 30s.
	Timeout time.Duration

	// DBPath overrides the local database location. Empty means the
	// store's default path.
	DBPath string

	// LogFile is where the TUI writes its log. Default:
	// $XDG_STATE_HOME/coursegen/coursegen.log.
	LogFile string

	// LogMode is "dev" or "prod". Default: "prod".
	LogMode string

	// LogLevel is a zap level name. Default: "info".
	LogLevel string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIURL:   "http://localhost:8000",
		Timeout:  30 * time.Second,
		LogMode:  "prod",
		LogLevel: "info",
	}
}

// LoadDotEnv loads variables from the given files (".env" when none) into
// the process environment. Already-set variables win. Missing files are
// not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if u := os.Getenv("COURSEGEN_API_URL"); u != "" {
		cfg.APIURL = u
	}
	if t := os.Getenv("COURSEGEN_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return cfg, fmt.Errorf("COURSEGEN_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if p := os.Getenv("COURSEGEN_DB"); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv("COURSEGEN_LOG_FILE"); p != "" {
		cfg.LogFile = p
	}
	if m := os.Getenv("COURSEGEN_LOG_MODE"); m != "" {
		cfg.LogMode = m
	}
	if l := os.Getenv("COURSEGEN_LOG_LEVEL"); l != "" {
		cfg.LogLevel = l
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API URL %q must use http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("API URL %q has no host", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.LogMode {
	case "dev", "prod":
	default:
		return fmt.Errorf("unknown log mode %q (want dev or prod)", c.LogMode)
	}
	return nil
}

// DefaultLogPath resolves the TUI log file path:
// 1. $XDG_STATE_HOME/coursegen/coursegen.log
// 2. ~/.local/state/coursegen/coursegen.log
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}

	p := filepath.Join(stateHome, "coursegen", "coursegen.log")
	return p, os.MkdirAll(filepath.Dir(p), 0o755)
}
