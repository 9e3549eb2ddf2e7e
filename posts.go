package posts

import (
	"io/fs"
	"time"

	"github.com/goliatone/go-posts/catalog"
	contentcmd "github.com/goliatone/go-posts/internal/commands/content"
	"github.com/goliatone/go-posts/internal/di"
	"github.com/goliatone/go-posts/internal/exporter"
	"github.com/goliatone/go-posts/internal/lint"
	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/internal/watch"
	"github.com/goliatone/go-posts/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// CatalogService exports the catalog service contract for consumers of the posts package.
type CatalogService = catalog.Service

// Post exports the catalog post record.
type Post = catalog.Post

// ListOptions exports the catalog list options.
type ListOptions = catalog.ListOptions

// SyncOptions exports the catalog sync options.
type SyncOptions = catalog.SyncOptions

// SyncResult exports the catalog sync summary.
type SyncResult = catalog.SyncResult

// TagCount exports the catalog tag usage pair.
type TagCount = catalog.TagCount

// PostService exports the file-centric post service contract.
type PostService = interfaces.PostService

// Document exports the parsed post document.
type Document = interfaces.Document

// FrontMatter exports the post metadata block.
type FrontMatter = interfaces.FrontMatter

// ScanOptions exports the document discovery options.
type ScanOptions = interfaces.ScanOptions

// RenderOptions exports the Markdown rendering options.
type RenderOptions = interfaces.RenderOptions

// MarkdownService exports the filesystem-backed post service implementation.
type MarkdownService = markdown.Service

// LintRunner exports the hygiene check runner.
type LintRunner = lint.Runner

// Report exports the hygiene report.
type Report = lint.Report

// Issue exports a single hygiene finding.
type Issue = lint.Issue

// Severity exports the hygiene severity scale.
type Severity = lint.Severity

// ExportService exports the artifact exporter.
type ExportService = exporter.Service

// ExportOptions exports the per-run exporter options.
type ExportOptions = exporter.Options

// ExportResult exports the exporter run summary.
type ExportResult = exporter.Result

// Artifact exports one written exporter output.
type Artifact = exporter.Artifact

// Watcher exports the content tree watcher.
type Watcher = watch.Watcher

// WatchHandler receives debounced batches of changed post files.
type WatchHandler = watch.Handler

// HandlerSet exports the content command handlers.
type HandlerSet = contentcmd.HandlerSet

// CommandRegistry accepts command handlers during module construction.
type CommandRegistry = contentcmd.CommandRegistry

// SyncCatalogCommand exports the catalog sync command message.
type SyncCatalogCommand = contentcmd.SyncCatalogCommand

// LintContentCommand exports the hygiene check command message.
type LintContentCommand = contentcmd.LintContentCommand

// ExportArtifactsCommand exports the artifact export command message.
type ExportArtifactsCommand = contentcmd.ExportArtifactsCommand

const (
	// SeverityWarning marks findings worth fixing that do not block a run.
	SeverityWarning = lint.SeverityWarning
	// SeverityError marks findings that fail hygiene runs.
	SeverityError = lint.SeverityError
)

const (
	ArtifactFeed     = exporter.ArtifactFeed
	ArtifactAtom     = exporter.ArtifactAtom
	ArtifactSitemap  = exporter.ArtifactSitemap
	ArtifactRobots   = exporter.ArtifactRobots
	ArtifactManifest = exporter.ArtifactManifest
)

// IsNotFound reports whether err is a catalog miss.
var IsNotFound = catalog.IsNotFound

// RenderReportText formats a hygiene report as one line per issue.
var RenderReportText = lint.RenderText

// RenderReportJSON formats a hygiene report as indented JSON.
var RenderReportJSON = lint.RenderJSON

// ErrWatchDisabled is returned by Watcher when the watch feature flag is off.
var ErrWatchDisabled = di.ErrWatchDisabled

// Option mutates the dependency container before services are constructed.
type Option = di.Option

// WithBunDB injects an externally managed database connection.
func WithBunDB(db *bun.DB) Option {
	return di.WithBunDB(db)
}

// WithLoggerProvider overrides the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithCache overrides the default repository cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return di.WithCache(service, serializer)
}

// WithContentFS reads post files from the supplied filesystem instead of the
// host filesystem rooted at the configured content directory.
func WithContentFS(fsys fs.FS) Option {
	return di.WithContentFS(fsys)
}

// WithMarkdownRenderer overrides the default goldmark renderer.
func WithMarkdownRenderer(renderer interfaces.MarkdownRenderer) Option {
	return di.WithMarkdownRenderer(renderer)
}

// WithClock overrides the time source used for sync stamps, feed dates and
// draft cutoffs.
func WithClock(now func() time.Time) Option {
	return di.WithClock(now)
}

// WithCommandRegistry registers the content command handlers against the
// supplied dispatcher-backed registry during construction.
func WithCommandRegistry(reg CommandRegistry) Option {
	return di.WithCommandRegistry(reg)
}

// Module represents the top level posts runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a posts module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Catalog returns the configured catalog service.
func (m *Module) Catalog() CatalogService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Catalog()
}

// Markdown returns the file-centric post service.
func (m *Module) Markdown() *MarkdownService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Markdown()
}

// Linter returns the configured hygiene runner.
func (m *Module) Linter() *LintRunner {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Linter()
}

// Exporter returns the configured artifact exporter.
func (m *Module) Exporter() *ExportService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Exporter()
}

// Commands returns the content command handlers.
func (m *Module) Commands() *HandlerSet {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Commands()
}

// Watcher builds a filesystem watcher over the content directory. Each call
// returns a fresh watcher; the caller owns its Run lifecycle.
func (m *Module) Watcher(handler WatchHandler) (*Watcher, error) {
	return m.container.Watcher(handler)
}

// Close releases resources the module opened.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
