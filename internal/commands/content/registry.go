package contentcmd

import (
	"errors"

	"github.com/goliatone/go-posts/internal/commands"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Services groups the dependencies content command handlers execute against.
type Services struct {
	Catalog  CatalogService
	Loader   DocumentLoader
	Linter   Linter
	Exporter Exporter
}

// HandlerSet groups the content command handlers produced by RegisterContentCommands.
type HandlerSet struct {
	Sync   *SyncCatalogHandler
	Lint   *LintContentHandler
	Export *ExportArtifactsHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	syncHandlerOpts   []commands.HandlerOption[SyncCatalogCommand]
	lintHandlerOpts   []commands.HandlerOption[LintContentCommand]
	exportHandlerOpts []commands.HandlerOption[ExportArtifactsCommand]
}

// WithSyncHandlerOptions forwards options to the SyncCatalogHandler constructor.
func WithSyncHandlerOptions(opts ...commands.HandlerOption[SyncCatalogCommand]) Option {
	return func(cfg *options) {
		cfg.syncHandlerOpts = append(cfg.syncHandlerOpts, opts...)
	}
}

// WithLintHandlerOptions forwards options to the LintContentHandler constructor.
func WithLintHandlerOptions(opts ...commands.HandlerOption[LintContentCommand]) Option {
	return func(cfg *options) {
		cfg.lintHandlerOpts = append(cfg.lintHandlerOpts, opts...)
	}
}

// WithExportHandlerOptions forwards options to the ExportArtifactsHandler constructor.
func WithExportHandlerOptions(opts ...commands.HandlerOption[ExportArtifactsCommand]) Option {
	return func(cfg *options) {
		cfg.exportHandlerOpts = append(cfg.exportHandlerOpts, opts...)
	}
}

// RegisterContentCommands builds the content command handlers and registers
// them with the provided registry. A HandlerSet containing the constructed
// handlers is returned so callers can wire additional integrations
// (dispatcher, cron) as needed.
func RegisterContentCommands(reg CommandRegistry, services Services, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if services.Catalog == nil {
		return nil, errors.New("content command registration: catalog service is nil")
	}
	if services.Loader == nil {
		return nil, errors.New("content command registration: document loader is nil")
	}
	if services.Linter == nil {
		return nil, errors.New("content command registration: linter is nil")
	}
	if services.Exporter == nil {
		return nil, errors.New("content command registration: exporter is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "content")

	syncHandler, err := NewSyncCatalogHandler(services.Catalog, logger, cfg.syncHandlerOpts...)
	if err != nil {
		return nil, err
	}
	lintHandler, err := NewLintContentHandler(services.Loader, services.Linter, logger, cfg.lintHandlerOpts...)
	if err != nil {
		return nil, err
	}
	exportHandler, err := NewExportArtifactsHandler(services.Exporter, logger, gates, cfg.exportHandlerOpts...)
	if err != nil {
		return nil, err
	}

	if reg != nil {
		if err := reg.RegisterCommand(syncHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(lintHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(exportHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Sync:   syncHandler,
		Lint:   lintHandler,
		Export: exportHandler,
	}, nil
}
