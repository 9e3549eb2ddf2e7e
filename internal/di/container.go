package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/goliatone/go-posts/internal/catalog"
	contentcmd "github.com/goliatone/go-posts/internal/commands/content"
	"github.com/goliatone/go-posts/internal/exporter"
	"github.com/goliatone/go-posts/internal/lint"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/internal/logging/console"
	"github.com/goliatone/go-posts/internal/logging/gologger"
	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/internal/runtimeconfig"
	"github.com/goliatone/go-posts/internal/watch"
	"github.com/goliatone/go-posts/pkg/interfaces"
	"github.com/goliatone/go-posts/pkg/storage"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// ErrWatchDisabled is returned by Watcher when the watch feature flag is off.
var ErrWatchDisabled = errors.New("di: watch feature is disabled")

// Container wires module dependencies from a validated configuration. Every
// service is constructed once; accessors hand out the shared instances.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	contentFS fs.FS
	renderer  interfaces.MarkdownRenderer
	clock     func() time.Time

	bunDB   *bun.DB
	ownedDB bool

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	postRepo catalog.PostRepository
	registry contentcmd.CommandRegistry

	markdownSvc *markdown.Service
	catalogSvc  catalog.Service
	lintRunner  *lint.Runner
	exportSvc   *exporter.Service
	handlers    *contentcmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB injects an externally managed database connection. The container
// will not close connections it did not open.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithContentFS reads post files from the supplied filesystem instead of the
// host filesystem rooted at the configured content directory.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.contentFS = fsys
	}
}

// WithMarkdownRenderer overrides the default goldmark renderer.
func WithMarkdownRenderer(renderer interfaces.MarkdownRenderer) Option {
	return func(c *Container) {
		c.renderer = renderer
	}
}

// WithClock overrides the time source used for sync stamps, feed dates and
// draft cutoffs. Tests inject a fixed clock here.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		c.clock = now
	}
}

// WithPostRepository overrides the storage-derived catalog repository.
func WithPostRepository(repo catalog.PostRepository) Option {
	return func(c *Container) {
		c.postRepo = repo
	}
}

// WithCommandRegistry registers the content command handlers against the
// supplied dispatcher-backed registry during construction.
func WithCommandRegistry(reg contentcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.TTLDuration(),
		clock:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()

	if err := c.configureServices(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.configureCommands(); err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider == nil && c.Config.Features.Logger {
		provider, err := newLoggerProvider(c.Config.Logging)
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	}
	if c.logger == nil {
		c.logger = logging.ModuleLogger(c.loggerProvider, "")
	}
	return nil
}

func newLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	}
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil || c.Config.Storage.Provider != "sqlite" {
		return nil
	}

	db, err := storage.OpenBun(c.Config.Storage.DSN)
	if err != nil {
		return fmt.Errorf("di: open catalog storage: %w", err)
	}
	if err := storage.EnsureSchema(context.Background(), db, (*catalog.Post)(nil)); err != nil {
		db.Close()
		return fmt.Errorf("di: prepare catalog storage: %w", err)
	}

	c.bunDB = db
	c.ownedDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.postRepo != nil {
		return
	}

	if c.bunDB != nil {
		if c.cacheService != nil && c.keySerializer != nil {
			c.postRepo = catalog.NewBunPostRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		} else {
			c.postRepo = catalog.NewBunPostRepository(c.bunDB)
		}
		return
	}

	c.postRepo = catalog.NewMemoryPostRepository()
}

func (c *Container) configureServices() error {
	if c.markdownSvc == nil {
		svc, err := markdown.NewService(markdown.Config{
			BasePath:              c.Config.Content.Dir,
			Pattern:               c.Config.Content.Pattern,
			Extensions:            c.Config.Content.Extensions,
			Recursive:             c.Config.Content.Recursive,
			IncludeSectionIndexes: c.Config.Content.SectionIndexes,
		}, c.contentFS, c.renderer)
		if err != nil {
			return fmt.Errorf("di: configure markdown service: %w", err)
		}
		c.markdownSvc = svc
		logging.MarkdownLogger(c.loggerProvider).Debug("markdown.configured",
			"dir", c.Config.Content.Dir,
			"pattern", c.Config.Content.Pattern,
		)
	}

	if c.catalogSvc == nil {
		logger := logging.CatalogLogger(c.loggerProvider)
		svc, err := catalog.NewService(c.markdownSvc, c.postRepo,
			catalog.WithClock(c.clock),
			catalog.WithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("di: configure catalog service: %w", err)
		}
		c.catalogSvc = svc
		logger.Debug("catalog.configured",
			"storage", c.storageProviderName(),
			"cache", c.cacheService != nil,
		)
	}

	if c.lintRunner == nil {
		logger := logging.LintLogger(c.loggerProvider)
		rules := enabledRules(c.Config.Lint.DisabledRules)
		opts := []lint.RunnerOption{
			lint.WithRules(rules...),
			lint.WithWorkers(c.Config.Lint.Workers),
			lint.WithLogger(logger),
		}
		if threshold := strings.TrimSpace(c.Config.Lint.Threshold); threshold != "" {
			opts = append(opts, lint.WithThreshold(lint.Severity(threshold)))
		}
		if path := strings.TrimSpace(c.Config.Lint.SchemaFile); path != "" {
			rule, err := lint.FrontMatterSchemaFile(path)
			if err != nil {
				return fmt.Errorf("di: configure lint schema rule: %w", err)
			}
			opts = append(opts, lint.WithExtraRules(rule))
		}
		c.lintRunner = lint.NewRunner(opts...)
		logger.Debug("lint.configured",
			"rules", len(rules),
			"threshold", string(c.lintRunner.Threshold()),
		)
	}

	if c.exportSvc == nil {
		logger := logging.ExporterLogger(c.loggerProvider)
		svc, err := exporter.New(exporter.Config{
			BaseURL:         c.Config.Site.BaseURL,
			OutputDir:       c.Config.Export.OutputDir,
			SiteTitle:       c.Config.Site.Title,
			SiteDescription: c.Config.Site.Description,
			Workers:         c.Config.Export.Workers,
		}, c.catalogSvc,
			exporter.WithLogger(logger),
			exporter.WithClock(c.clock),
		)
		if err != nil {
			return fmt.Errorf("di: configure exporter: %w", err)
		}
		c.exportSvc = svc
		logger.Debug("export.configured",
			"base_url", c.Config.Site.BaseURL,
			"output_dir", c.Config.Export.OutputDir,
		)
	}

	return nil
}

func (c *Container) configureCommands() error {
	gates := contentcmd.FeatureGates{
		FeedsEnabled: func() bool { return c.Config.Features.Feeds },
	}

	handlers, err := contentcmd.RegisterContentCommands(c.registry, contentcmd.Services{
		Catalog:  c.catalogSvc,
		Loader:   c.markdownSvc,
		Linter:   c.lintRunner,
		Exporter: c.exportSvc,
	}, c.loggerProvider, gates)
	if err != nil {
		return fmt.Errorf("di: register content commands: %w", err)
	}

	c.handlers = handlers
	return nil
}

func (c *Container) storageProviderName() string {
	if c.bunDB != nil {
		return "sqlite"
	}
	return "memory"
}

// enabledRules removes the named rules from the default hygiene set. Unknown
// names are ignored so configs survive rule renames.
func enabledRules(disabled []string) []lint.Rule {
	if len(disabled) == 0 {
		return lint.DefaultRules()
	}

	skip := make(map[string]struct{}, len(disabled))
	for _, name := range disabled {
		skip[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	rules := []lint.Rule{}
	for _, rule := range lint.DefaultRules() {
		if _, ok := skip[rule.Name()]; ok {
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

// LoggerProvider exposes the configured logger provider. It is nil when the
// logger feature is disabled and no provider was injected.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns the container's root logger.
func (c *Container) Logger() interfaces.Logger {
	return c.logger
}

// Markdown returns the post file service.
func (c *Container) Markdown() *markdown.Service {
	return c.markdownSvc
}

// Catalog returns the configured catalog service.
func (c *Container) Catalog() catalog.Service {
	return c.catalogSvc
}

// Linter returns the configured hygiene runner.
func (c *Container) Linter() *lint.Runner {
	return c.lintRunner
}

// Exporter returns the configured artifact exporter.
func (c *Container) Exporter() *exporter.Service {
	return c.exportSvc
}

// Commands returns the content command handlers.
func (c *Container) Commands() *contentcmd.HandlerSet {
	return c.handlers
}

// PostRepository exposes the configured catalog repository.
func (c *Container) PostRepository() catalog.PostRepository {
	return c.postRepo
}

// DB exposes the catalog database, nil when storage is in-memory.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// Watcher builds a filesystem watcher over the content directory that invokes
// handler with debounced batches of changed post files. Each call returns a
// fresh watcher; the caller owns its Run lifecycle.
func (c *Container) Watcher(handler watch.Handler) (*watch.Watcher, error) {
	if !c.Config.Features.Watch {
		return nil, ErrWatchDisabled
	}

	return watch.New(watch.Config{
		Root:       c.Config.Content.Dir,
		Extensions: c.Config.Content.Extensions,
		Debounce:   c.Config.Watch.DebounceDuration(),
	}, handler, watch.WithLogger(logging.WatchLogger(c.loggerProvider)))
}

// Close releases resources the container opened, currently the sqlite
// connection when the container owns it.
func (c *Container) Close() error {
	if c.ownedDB && c.bunDB != nil {
		err := c.bunDB.Close()
		c.bunDB = nil
		c.ownedDB = false
		return err
	}
	return nil
}
