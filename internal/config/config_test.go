package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdirTemp runs the test from an empty directory so no config or .env file is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_MissingToken(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TELEGRAM_API_TOKEN", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("expected ErrMissingEnvironmentVariables, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("APP_ENV", "")
	t.Setenv("GENERATOR_BASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TelegramAPIToken != "token" {
		t.Errorf("expected token, got %q", cfg.TelegramAPIToken)
	}
	if cfg.Env != "local" {
		t.Errorf("expected env local, got %q", cfg.Env)
	}
	if cfg.Generator.BaseURL != "http://localhost:5000/api" {
		t.Errorf("unexpected base url %q", cfg.Generator.BaseURL)
	}
	if cfg.Generator.GeneratePath != "/quiz/generate-quiz" || cfg.Generator.FilesPath != "/files" {
		t.Errorf("unexpected paths %+v", cfg.Generator)
	}
	if cfg.Generator.Timeout != 60*time.Second {
		t.Errorf("expected 60s timeout, got %s", cfg.Generator.Timeout)
	}
	if len(cfg.Quiz.PresetCounts) != 5 || cfg.Quiz.PresetCounts[0] != 5 {
		t.Errorf("unexpected presets %v", cfg.Quiz.PresetCounts)
	}
	if len(cfg.Quiz.Topics) != len(DefaultTopics) {
		t.Errorf("expected %d topics, got %d", len(DefaultTopics), len(cfg.Quiz.Topics))
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("APP_ENV", "production")
	t.Setenv("GENERATOR_BASE_URL", "http://generator:8000/api")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("expected production, got %q", cfg.Env)
	}
	if cfg.Generator.BaseURL != "http://generator:8000/api" {
		t.Errorf("unexpected base url %q", cfg.Generator.BaseURL)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected log level warn, got %q", cfg.LogLevel)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("GENERATOR_BASE_URL", "")

	yaml := `
generator:
  timeout: 5s
  files_path: /uploads
quiz:
  preset_counts: [3, 6]
  topics:
    - Fiqih
`
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Generator.Timeout != 5*time.Second || cfg.Generator.FilesPath != "/uploads" {
		t.Errorf("unexpected generator section %+v", cfg.Generator)
	}
	if len(cfg.Quiz.PresetCounts) != 2 || cfg.Quiz.PresetCounts[1] != 6 {
		t.Errorf("unexpected presets %v", cfg.Quiz.PresetCounts)
	}
	if len(cfg.Quiz.Topics) != 1 || cfg.Quiz.Topics[0] != "Fiqih" {
		t.Errorf("unexpected topics %v", cfg.Quiz.Topics)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("TELEGRAM_API_TOKEN", "")
	// godotenv never overrides variables that are already set, so drop it entirely.
	os.Unsetenv("TELEGRAM_API_TOKEN")

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TELEGRAM_API_TOKEN=from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("TELEGRAM_API_TOKEN") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TelegramAPIToken != "from-dotenv" {
		t.Errorf("expected token from .env, got %q", cfg.TelegramAPIToken)
	}
}
