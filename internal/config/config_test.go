package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}
	if cfg.ListPath != defaultListPath {
		t.Fatalf("ListPath = %q, want %q", cfg.ListPath, defaultListPath)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("RequestTimeout = %s, want 10s", cfg.RequestTimeout)
	}
	if cfg.PageSize != 10 {
		t.Fatalf("PageSize = %d, want 10", cfg.PageSize)
	}

	wantSession, err := expandPath(defaultSessionPath)
	if err != nil {
		t.Fatalf("expandPath(defaultSessionPath) returned error: %v", err)
	}
	if cfg.SessionPath != wantSession {
		t.Fatalf("SessionPath = %q, want %q", cfg.SessionPath, wantSession)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.Language != "zh" || cfg.Theme != defaultTheme {
		t.Fatalf("Language/Theme = %q/%q, want zh/%s", cfg.Language, cfg.Theme, defaultTheme)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base_url = "  https://yoga.example.com/api  "
list_path = "yoga-poses/"
request_timeout = "2s"
page_size = 20
session_path = "  ~/.asana/session.toml  "
dataset_path = "~/poses.json"
offline_filter = true
rate_limit_rps = 5
rate_limit_burst = 3
log_level = " DEBUG "
log_format = "json"
theme = "Slate"
language = "EN"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "https://yoga.example.com/api" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.ListPath != "/yoga-poses" {
		t.Fatalf("ListPath = %q, want /yoga-poses", cfg.ListPath)
	}
	if cfg.RequestTimeout != 2*time.Second || cfg.PageSize != 20 {
		t.Fatalf("RequestTimeout/PageSize = %s/%d, want 2s/20", cfg.RequestTimeout, cfg.PageSize)
	}
	if cfg.SessionPath != filepath.Join(home, ".asana/session.toml") {
		t.Fatalf("SessionPath = %q", cfg.SessionPath)
	}
	if cfg.DatasetPath != filepath.Join(home, "poses.json") {
		t.Fatalf("DatasetPath = %q", cfg.DatasetPath)
	}
	if !cfg.OfflineFilter {
		t.Fatalf("OfflineFilter = false, want true")
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 3 {
		t.Fatalf("RateLimit = %v/%d, want 5/3", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("LogLevel/LogFormat = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Theme != "Slate" || cfg.Language != "en" {
		t.Fatalf("Theme/Language = %q/%q", cfg.Theme, cfg.Language)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base_url = "   "
list_path = ""
theme = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}
	if cfg.ListPath != defaultListPath || cfg.Theme != defaultTheme {
		t.Fatalf("ListPath/Theme = %q/%q", cfg.ListPath, cfg.Theme)
	}
}

func TestLoad_EmptyLogFileMeansStderr(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`log_file = ""`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogFile != "" {
		t.Fatalf("LogFile = %q, want empty", cfg.LogFile)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	cases := map[string]string{
		"timeout":    `request_timeout = "soon"`,
		"negative":   `request_timeout = "-1s"`,
		"page size":  `page_size = 0`,
		"log format": `log_format = "xml"`,
		"rate":       `rate_limit_rps = -2`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("Load(%s) returned nil error", body)
			}
		})
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvAPIBaseURL, "http://10.0.0.2:3001/api")
	t.Setenv(EnvSessionPath, "~/alt/session.toml")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvLanguage, "en")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base_url = "http://file.example/api"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "http://10.0.0.2:3001/api" {
		t.Fatalf("APIBaseURL = %q, want env value", cfg.APIBaseURL)
	}
	if cfg.SessionPath != filepath.Join(home, "alt/session.toml") {
		t.Fatalf("SessionPath = %q", cfg.SessionPath)
	}
	if cfg.LogLevel != "warn" || cfg.Language != "en" {
		t.Fatalf("LogLevel/Language = %q/%q", cfg.LogLevel, cfg.Language)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("ASANA_LANGUAGE=en\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(EnvLanguage, "")
	os.Unsetenv(EnvLanguage)

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), envFile); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
	if got := os.Getenv(EnvLanguage); got != "en" {
		t.Fatalf("%s = %q, want en", EnvLanguage, got)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
