package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingContentDir indicates the content directory was blanked out.
var ErrMissingContentDir = errors.New("posts config: content directory is required")

// ErrMissingOutputDir indicates the export output directory was blanked out.
var ErrMissingOutputDir = errors.New("posts config: export output directory is required")

// ErrBaseURLRequired ensures feeds only build against an explicit site URL.
var ErrBaseURLRequired = errors.New("posts config: site base URL is required when feeds are enabled")

// ErrPersistenceRequiresSQLite keeps the persistence toggle tied to a real store.
var ErrPersistenceRequiresSQLite = errors.New("posts config: persistence feature requires the sqlite storage provider")

var ErrStorageProviderUnknown = errors.New("posts config: storage provider is invalid")
var ErrStorageDSNRequired = errors.New("posts config: storage dsn is required for the sqlite provider")
var ErrWorkerCountInvalid = errors.New("posts config: worker count must be zero or positive")
var ErrLintThresholdInvalid = errors.New("posts config: lint threshold must be warning or error")
var ErrDurationInvalid = errors.New("posts config: duration must parse with time.ParseDuration")
var ErrLoggingProviderRequired = errors.New("posts config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("posts config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("posts config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("posts config: logging format is invalid")

// Config aggregates content locations, feature flags, and adapter bindings for
// the posts module. Fields intentionally use simple types so host applications
// can extend them later.
type Config struct {
	Content  ContentConfig `yaml:"content"`
	Site     SiteConfig    `yaml:"site"`
	Storage  StorageConfig `yaml:"storage"`
	Cache    CacheConfig   `yaml:"cache"`
	Lint     LintConfig    `yaml:"lint"`
	Export   ExportConfig  `yaml:"export"`
	Watch    WatchConfig   `yaml:"watch"`
	Features Features      `yaml:"features"`
	Logging  LoggingConfig `yaml:"logging"`
}

// ContentConfig captures where posts live on disk and which files count.
type ContentConfig struct {
	Dir            string   `yaml:"dir"`
	Pattern        string   `yaml:"pattern"`
	Extensions     []string `yaml:"extensions"`
	Recursive      bool     `yaml:"recursive"`
	SectionIndexes bool     `yaml:"section_indexes"`
}

// SiteConfig carries the site identity stamped into exported artifacts.
type SiteConfig struct {
	BaseURL     string `yaml:"base_url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// StorageConfig selects the catalog backend.
type StorageConfig struct {
	Provider string `yaml:"provider"`
	DSN      string `yaml:"dsn"`
}

// CacheConfig captures read-through cache behaviour for the catalog.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	TTL     string `yaml:"ttl"`
}

// TTLDuration returns the cache TTL as a duration.
func (c CacheConfig) TTLDuration() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.TTL))
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// LintConfig captures hygiene check behaviour.
type LintConfig struct {
	Threshold     string   `yaml:"threshold"`
	DisabledRules []string `yaml:"disabled_rules"`
	SchemaFile    string   `yaml:"schema_file"`
	Workers       int      `yaml:"workers"`
}

// ExportConfig captures artifact generation behaviour.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`
	Workers   int    `yaml:"workers"`
}

// WatchConfig captures filesystem watch behaviour.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DebounceDuration returns the watch debounce as a duration. Zero lets the
// watcher apply its own default.
func (c WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.Debounce))
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Features toggles module functionality.
type Features struct {
	Persistence bool `yaml:"persistence"`
	Feeds       bool `yaml:"feeds"`
	Watch       bool `yaml:"watch"`
	Logger      bool `yaml:"logger"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns opinionated defaults matching a Hugo-style content
// tree rooted at content/posts.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:       "content/posts",
			Pattern:   "**/*.md",
			Recursive: true,
		},
		Site: SiteConfig{
			BaseURL: "http://localhost",
			Title:   "Posts",
		},
		Storage: StorageConfig{
			Provider: "memory",
			DSN:      "file::memory:?cache=shared",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     "1m",
		},
		Lint: LintConfig{
			Threshold: "error",
		},
		Export: ExportConfig{
			OutputDir: "public",
		},
		Watch: WatchConfig{
			Debounce: "400ms",
		},
		Features: Features{
			Feeds: true,
			Watch: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// LoadFile reads a YAML config file and overlays it on the defaults, so a
// partial file only overrides the keys it names.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("posts config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("posts config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrMissingContentDir
	}
	if strings.TrimSpace(cfg.Export.OutputDir) == "" {
		return ErrMissingOutputDir
	}
	if cfg.Features.Feeds && strings.TrimSpace(cfg.Site.BaseURL) == "" {
		return ErrBaseURLRequired
	}

	provider := normalizeProvider(cfg.Storage.Provider)
	switch provider {
	case "", "memory":
		if cfg.Features.Persistence {
			return ErrPersistenceRequiresSQLite
		}
	case "sqlite":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	if cfg.Export.Workers < 0 {
		return fmt.Errorf("%w: export", ErrWorkerCountInvalid)
	}
	if cfg.Lint.Workers < 0 {
		return fmt.Errorf("%w: lint", ErrWorkerCountInvalid)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Lint.Threshold)) {
	case "", "warning", "error":
	default:
		return fmt.Errorf("%w: %s", ErrLintThresholdInvalid, cfg.Lint.Threshold)
	}

	if err := validateDuration("cache.ttl", cfg.Cache.TTL); err != nil {
		return err
	}
	if err := validateDuration("watch.debounce", cfg.Watch.Debounce); err != nil {
		return err
	}

	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedLoggingProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func validateDuration(field, raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if _, err := time.ParseDuration(trimmed); err != nil {
		return fmt.Errorf("%w: %s=%q", ErrDurationInvalid, field, raw)
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedLoggingProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
