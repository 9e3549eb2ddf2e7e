package contentcmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-posts/internal/commands"
	"github.com/goliatone/go-posts/internal/lint"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const lintOperation = "content.lint"

// ErrLinterRequired is returned when a lint handler is built without a runner.
var ErrLinterRequired = errors.New("content command: linter is required")

// ErrLoaderRequired is returned when a lint handler is built without a loader.
var ErrLoaderRequired = errors.New("content command: document loader is required")

// ErrHygieneFailed marks a run whose issues reached the failure threshold.
var ErrHygieneFailed = errors.New("content command: hygiene checks failed")

// DocumentLoader loads the documents the hygiene rules run over.
type DocumentLoader interface {
	LoadDirectory(ctx context.Context, dir string, opts interfaces.ScanOptions) ([]*interfaces.Document, error)
}

// Linter runs hygiene rules over loaded documents.
type Linter interface {
	Run(ctx context.Context, docs []*interfaces.Document) (*lint.Report, error)
	Threshold() lint.Severity
}

var _ command.Commander[LintContentCommand] = (*LintContentHandler)(nil)

// LintContentHandler runs the hygiene rules via the shared command handler foundation.
type LintContentHandler struct {
	inner *commands.Handler[LintContentCommand]
}

// NewLintContentHandler creates a handler bound to the supplied loader and runner.
func NewLintContentHandler(loader DocumentLoader, linter Linter, logger interfaces.Logger, opts ...commands.HandlerOption[LintContentCommand]) (*LintContentHandler, error) {
	if loader == nil {
		return nil, ErrLoaderRequired
	}
	if linter == nil {
		return nil, ErrLinterRequired
	}
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg LintContentCommand) error {
		docs, err := loader.LoadDirectory(ctx, msg.Directory, interfaces.ScanOptions{})
		if err != nil {
			return err
		}

		report, err := linter.Run(ctx, docs)
		if err != nil {
			return err
		}

		threshold := linter.Threshold()
		if raw := strings.TrimSpace(msg.Threshold); raw != "" {
			threshold = lint.Severity(strings.ToLower(raw))
		}

		logging.WithFields(baseLogger, map[string]any{
			"checked_count": report.Checked,
			"error_count":   report.Errors,
			"warning_count": report.Warnings,
			"threshold":     string(threshold),
		}).Info("content.command.lint.completed")

		if report.FailsAt(threshold) {
			return fmt.Errorf("%w: %d errors, %d warnings", ErrHygieneFailed, report.Errors, report.Warnings)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[LintContentCommand]{
		commands.WithLogger[LintContentCommand](baseLogger),
		commands.WithOperation[LintContentCommand](lintOperation),
		commands.WithMessageFields(func(msg LintContentCommand) map[string]any {
			fields := map[string]any{}
			if msg.Directory != "" {
				fields["directory"] = msg.Directory
			}
			if msg.Threshold != "" {
				fields["threshold"] = msg.Threshold
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LintContentCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LintContentHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}, nil
}

// Execute satisfies command.Commander[LintContentCommand].
func (h *LintContentHandler) Execute(ctx context.Context, msg LintContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
