package contentcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-posts/internal/exporter"
)

const (
	syncCatalogMessageType     = "posts.content.sync_catalog"
	lintContentMessageType     = "posts.content.lint"
	exportArtifactsMessageType = "posts.content.export"
)

// SyncCatalogCommand triggers a content walk that reconciles the catalog with
// the Markdown tree. An empty Directory uses the configured content root.
type SyncCatalogCommand struct {
	// Directory overrides the configured content root for this run.
	Directory string `json:"directory,omitempty"`
	// Prune removes catalog rows whose source files no longer exist.
	Prune bool `json:"prune,omitempty"`
	// DryRun reports what would change without persisting anything.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (SyncCatalogCommand) Type() string { return syncCatalogMessageType }

// Validate rejects a directory override that is all whitespace.
func (cmd SyncCatalogCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.By(optionalNotBlank(
			"posts.content.sync_catalog.directory_blank", "directory cannot be blank"))),
	)
}

// LintContentCommand runs the hygiene rules over the content tree. An empty
// Threshold keeps the runner's configured failure severity.
type LintContentCommand struct {
	// Directory overrides the configured content root for this run.
	Directory string `json:"directory,omitempty"`
	// Threshold selects the severity that fails the run (warning or error).
	Threshold string `json:"threshold,omitempty"`
}

// Type implements command.Message.
func (LintContentCommand) Type() string { return lintContentMessageType }

// Validate ensures the threshold names a known severity.
func (cmd LintContentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.By(optionalNotBlank(
			"posts.content.lint.directory_blank", "directory cannot be blank"))),
		validation.Field(&cmd.Threshold, validation.In("warning", "error")),
	)
}

// ExportArtifactsCommand writes the machine-readable artifacts for the
// current catalog. An empty Only selects every artifact.
type ExportArtifactsCommand struct {
	// IncludeDrafts lists drafts in the manifest. Feeds and the sitemap
	// never include drafts.
	IncludeDrafts bool `json:"include_drafts,omitempty"`
	// Only restricts the run to the named artifacts.
	Only []string `json:"only,omitempty"`
}

// Type implements command.Message.
func (ExportArtifactsCommand) Type() string { return exportArtifactsMessageType }

// Validate ensures every requested artifact is one the exporter produces.
func (cmd ExportArtifactsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Only, validation.Each(
			validation.Required,
			validation.In(
				exporter.ArtifactFeed,
				exporter.ArtifactAtom,
				exporter.ArtifactSitemap,
				exporter.ArtifactRobots,
				exporter.ArtifactManifest,
			))),
	)
}

func optionalNotBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		raw, _ := value.(string)
		if raw == "" {
			return nil
		}
		if strings.TrimSpace(raw) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
