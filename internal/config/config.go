package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the client settings.
type Config struct {
	APIBaseURL     string
	ListPath       string
	RequestTimeout time.Duration
	PageSize       int
	SessionPath    string
	DatasetPath    string
	OfflineFilter  bool
	RateLimitRPS   float64
	RateLimitBurst int
	LogFile        string
	LogLevel       string
	LogFormat      string
	Theme          string
	Language       string
}

const (
	defaultConfigPath     = "~/.config/asana/config.toml"
	defaultAPIBaseURL     = "http://localhost:3001/api"
	defaultListPath       = "/yoga-actions"
	defaultRequestTimeout = 10 * time.Second
	defaultPageSize       = 10
	defaultSessionPath    = "~/.config/asana/session.toml"
	defaultRateLimitBurst = 1
	defaultLogFile        = "~/.local/state/asana/asana.log"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultTheme          = "Nightfox"
	defaultLanguage       = "zh"
)

// Environment variables that override file values.
const (
	EnvAPIBaseURL  = "ASANA_API_BASE_URL"
	EnvSessionPath = "ASANA_SESSION_PATH"
	EnvLogLevel    = "ASANA_LOG_LEVEL"
	EnvLanguage    = "ASANA_LANGUAGE"
)

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		APIBaseURL:     defaultAPIBaseURL,
		ListPath:       defaultListPath,
		RequestTimeout: defaultRequestTimeout,
		PageSize:       defaultPageSize,
		SessionPath:    mustExpand(defaultSessionPath),
		RateLimitBurst: defaultRateLimitBurst,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
		Theme:          defaultTheme,
		Language:       defaultLanguage,
	}
}

type fileConfig struct {
	APIBaseURL     string   `toml:"api_base_url"`
	ListPath       string   `toml:"list_path"`
	RequestTimeout string   `toml:"request_timeout"`
	PageSize       *int     `toml:"page_size"`
	SessionPath    string   `toml:"session_path"`
	DatasetPath    string   `toml:"dataset_path"`
	OfflineFilter  bool     `toml:"offline_filter"`
	RateLimitRPS   *float64 `toml:"rate_limit_rps"`
	RateLimitBurst *int     `toml:"rate_limit_burst"`
	LogFile        *string  `toml:"log_file"`
	LogLevel       string   `toml:"log_level"`
	LogFormat      string   `toml:"log_format"`
	Theme          string   `toml:"theme"`
	Language       string   `toml:"language"`
}

// Load reads the config file at path (the default location when empty),
// then applies environment overrides. A missing file yields defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		var raw fileConfig
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if err := cfg.apply(raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from files into the process environment
// without replacing variables that are already set. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) apply(raw fileConfig) error {
	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		c.APIBaseURL = v
	}
	if v := strings.TrimSpace(raw.ListPath); v != "" {
		c.ListPath = "/" + strings.Trim(v, "/")
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("request_timeout must be positive, got %s", v)
		}
		c.RequestTimeout = d
	}
	if raw.PageSize != nil {
		if *raw.PageSize <= 0 {
			return fmt.Errorf("page_size must be positive, got %d", *raw.PageSize)
		}
		c.PageSize = *raw.PageSize
	}
	if v := strings.TrimSpace(raw.SessionPath); v != "" {
		c.SessionPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.DatasetPath); v != "" {
		c.DatasetPath = mustExpand(v)
	}
	c.OfflineFilter = raw.OfflineFilter
	if raw.RateLimitRPS != nil {
		if *raw.RateLimitRPS < 0 {
			return fmt.Errorf("rate_limit_rps must not be negative")
		}
		c.RateLimitRPS = *raw.RateLimitRPS
	}
	if raw.RateLimitBurst != nil && *raw.RateLimitBurst > 0 {
		c.RateLimitBurst = *raw.RateLimitBurst
	}
	if raw.LogFile != nil {
		// An explicit empty log_file sends logs to stderr.
		if v := strings.TrimSpace(*raw.LogFile); v != "" {
			c.LogFile = mustExpand(v)
		} else {
			c.LogFile = ""
		}
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogFormat)); v != "" {
		if v != "text" && v != "json" {
			return fmt.Errorf("log_format must be text or json, got %q", v)
		}
		c.LogFormat = v
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		c.Theme = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Language)); v != "" {
		c.Language = v
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIBaseURL)); v != "" {
		c.APIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSessionPath)); v != "" {
		c.SessionPath = mustExpand(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLanguage)); v != "" {
		c.Language = strings.ToLower(v)
	}
}

// String renders the settings for debug logging.
func (c Config) String() string {
	return fmt.Sprintf("api=%s list=%s timeout=%s page_size=%d offline_filter=%t",
		c.APIBaseURL, c.ListPath, c.RequestTimeout, c.PageSize, c.OfflineFilter)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
