package contentcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-posts/internal/commands"
	"github.com/goliatone/go-posts/internal/exporter"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const exportOperation = "content.export"

// ErrExporterRequired is returned when an export handler is built without an exporter.
var ErrExporterRequired = errors.New("content command: exporter is required")

// Exporter writes the machine-readable artifacts for the catalog.
type Exporter interface {
	Export(ctx context.Context, opts exporter.Options) (*exporter.Result, error)
}

var _ command.Commander[ExportArtifactsCommand] = (*ExportArtifactsHandler)(nil)

// ExportArtifactsHandler generates export artifacts via the shared command
// handler foundation.
type ExportArtifactsHandler struct {
	inner *commands.Handler[ExportArtifactsCommand]
}

// NewExportArtifactsHandler creates a handler bound to the supplied exporter.
// When the feeds feature is disabled and the message does not name artifacts,
// the run skips feed.xml and atom.xml.
func NewExportArtifactsHandler(service Exporter, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ExportArtifactsCommand]) (*ExportArtifactsHandler, error) {
	if service == nil {
		return nil, ErrExporterRequired
	}
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ExportArtifactsCommand) error {
		only := append([]string(nil), msg.Only...)
		if len(only) == 0 && !gates.feedsEnabled() {
			only = []string{
				exporter.ArtifactSitemap,
				exporter.ArtifactRobots,
				exporter.ArtifactManifest,
			}
		}

		result, err := service.Export(ctx, exporter.Options{
			IncludeDrafts: msg.IncludeDrafts,
			Only:          only,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"post_count":     result.Posts,
				"artifact_count": len(result.Artifacts),
				"include_drafts": msg.IncludeDrafts,
			}).Info("content.command.export.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportArtifactsCommand]{
		commands.WithLogger[ExportArtifactsCommand](baseLogger),
		commands.WithOperation[ExportArtifactsCommand](exportOperation),
		commands.WithMessageFields(func(msg ExportArtifactsCommand) map[string]any {
			fields := map[string]any{}
			if msg.IncludeDrafts {
				fields["include_drafts"] = true
			}
			if len(msg.Only) > 0 {
				fields["only"] = msg.Only
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ExportArtifactsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportArtifactsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}, nil
}

// Execute satisfies command.Commander[ExportArtifactsCommand].
func (h *ExportArtifactsHandler) Execute(ctx context.Context, msg ExportArtifactsCommand) error {
	return h.inner.Execute(ctx, msg)
}
