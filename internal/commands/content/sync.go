package contentcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-posts/internal/catalog"
	"github.com/goliatone/go-posts/internal/commands"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const syncOperation = "content.sync_catalog"

// ErrCatalogServiceRequired is returned when a sync handler is built without a catalog.
var ErrCatalogServiceRequired = errors.New("content command: catalog service is required")

// CatalogService captures the catalog surface the sync handler drives.
type CatalogService interface {
	Sync(ctx context.Context, opts catalog.SyncOptions) (*catalog.SyncResult, error)
}

var _ command.Commander[SyncCatalogCommand] = (*SyncCatalogHandler)(nil)

// SyncCatalogHandler reconciles the catalog with the content tree via the
// shared command handler foundation.
type SyncCatalogHandler struct {
	inner *commands.Handler[SyncCatalogCommand]
}

// NewSyncCatalogHandler creates a handler bound to the supplied catalog service.
func NewSyncCatalogHandler(service CatalogService, logger interfaces.Logger, opts ...commands.HandlerOption[SyncCatalogCommand]) (*SyncCatalogHandler, error) {
	if service == nil {
		return nil, ErrCatalogServiceRequired
	}
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SyncCatalogCommand) error {
		result, err := service.Sync(ctx, catalog.SyncOptions{
			Dir:    msg.Directory,
			Prune:  msg.Prune,
			DryRun: msg.DryRun,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count":   result.Created,
				"updated_count":   result.Updated,
				"unchanged_count": result.Unchanged,
				"removed_count":   result.Removed,
				"failed_count":    len(result.Failures),
				"dry_run":         msg.DryRun,
			}).Info("content.command.sync_catalog.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncCatalogCommand]{
		commands.WithLogger[SyncCatalogCommand](baseLogger),
		commands.WithOperation[SyncCatalogCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncCatalogCommand) map[string]any {
			fields := map[string]any{}
			if msg.Directory != "" {
				fields["directory"] = msg.Directory
			}
			if msg.Prune {
				fields["prune"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncCatalogCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncCatalogHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}, nil
}

// Execute satisfies command.Commander[SyncCatalogCommand].
func (h *SyncCatalogHandler) Execute(ctx context.Context, msg SyncCatalogCommand) error {
	return h.inner.Execute(ctx, msg)
}
