package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-posts/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Content.Dir != "content/posts" {
		t.Fatalf("unexpected default content dir: %s", cfg.Content.Dir)
	}
	if cfg.Cache.TTLDuration() != time.Minute {
		t.Fatalf("unexpected default cache TTL: %v", cfg.Cache.TTLDuration())
	}
	if cfg.Watch.DebounceDuration() != 400*time.Millisecond {
		t.Fatalf("unexpected default watch debounce: %v", cfg.Watch.DebounceDuration())
	}
}

func TestConfigValidate_RequiresContentDir(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = " "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrMissingContentDir) {
		t.Fatalf("expected ErrMissingContentDir, got %v", err)
	}
}

func TestConfigValidate_RequiresOutputDir(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Export.OutputDir = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrMissingOutputDir) {
		t.Fatalf("expected ErrMissingOutputDir, got %v", err)
	}
}

func TestConfigValidate_FeedsRequireBaseURL(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Feeds = true
	cfg.Site.BaseURL = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrBaseURLRequired) {
		t.Fatalf("expected ErrBaseURLRequired, got %v", err)
	}

	cfg.Features.Feeds = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("base URL should be optional without feeds, got %v", err)
	}
}

func TestConfigValidate_PersistenceRequiresSQLite(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Persistence = true

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrPersistenceRequiresSQLite) {
		t.Fatalf("expected ErrPersistenceRequiresSQLite, got %v", err)
	}

	cfg.Storage.Provider = "sqlite"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sqlite provider should satisfy persistence, got %v", err)
	}
}

func TestConfigValidate_StorageProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "postgres"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}

	cfg.Storage.Provider = "sqlite"
	cfg.Storage.DSN = "  "
	err = cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigValidate_WorkerCounts(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Export.Workers = -1

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrWorkerCountInvalid) {
		t.Fatalf("expected ErrWorkerCountInvalid, got %v", err)
	}

	cfg.Export.Workers = 4
	cfg.Lint.Workers = -2
	err = cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrWorkerCountInvalid) {
		t.Fatalf("expected ErrWorkerCountInvalid for lint, got %v", err)
	}
}

func TestConfigValidate_LintThreshold(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Lint.Threshold = "fatal"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLintThresholdInvalid) {
		t.Fatalf("expected ErrLintThresholdInvalid, got %v", err)
	}

	cfg.Lint.Threshold = "warning"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("warning threshold should validate, got %v", err)
	}
}

func TestConfigValidate_DurationFields(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.TTL = "five minutes"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrDurationInvalid) {
		t.Fatalf("expected ErrDurationInvalid, got %v", err)
	}

	cfg.Cache.TTL = "30s"
	cfg.Watch.Debounce = "nope"
	err = cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrDurationInvalid) {
		t.Fatalf("expected ErrDurationInvalid for debounce, got %v", err)
	}
	if cfg.Cache.TTLDuration() != 30*time.Second {
		t.Fatalf("TTLDuration() = %v, want 30s", cfg.Cache.TTLDuration())
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestLoadFile_OverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posts.yml")
	raw := `content:
  dir: notes/posts
site:
  base_url: https://blog.example.com
  title: Example Engineering
lint:
  threshold: warning
  disabled_rules:
    - tags-style
watch:
  debounce: 250ms
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Content.Dir != "notes/posts" {
		t.Fatalf("content dir = %s", cfg.Content.Dir)
	}
	if cfg.Site.BaseURL != "https://blog.example.com" {
		t.Fatalf("base URL = %s", cfg.Site.BaseURL)
	}
	if cfg.Lint.Threshold != "warning" {
		t.Fatalf("lint threshold = %s", cfg.Lint.Threshold)
	}
	if len(cfg.Lint.DisabledRules) != 1 || cfg.Lint.DisabledRules[0] != "tags-style" {
		t.Fatalf("disabled rules = %v", cfg.Lint.DisabledRules)
	}
	if cfg.Watch.DebounceDuration() != 250*time.Millisecond {
		t.Fatalf("debounce = %v", cfg.Watch.DebounceDuration())
	}

	// Defaults survive for keys the file does not name.
	if cfg.Export.OutputDir != "public" {
		t.Fatalf("output dir default lost: %s", cfg.Export.OutputDir)
	}
	if !cfg.Cache.Enabled {
		t.Fatal("cache default lost")
	}
}

func TestLoadFile_InvalidContentFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posts.yml")
	if err := os.WriteFile(path, []byte("content:\n  dir: ''\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := runtimeconfig.LoadFile(path); !errors.Is(err, runtimeconfig.ErrMissingContentDir) {
		t.Fatalf("expected ErrMissingContentDir, got %v", err)
	}

	if _, err := runtimeconfig.LoadFile(filepath.Join(dir, "absent.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
