package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

const (
	rootModule     = "posts"
	catalogModule  = "posts.catalog"
	lintModule     = "posts.lint"
	exporterModule = "posts.export"
	watchModule    = "posts.watch"
	markdownModule = "posts.markdown"
)

const (
	fieldPostPath   = "post_path"
	fieldPostSlug   = "slug"
	fieldPostAction = "sync_action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// CatalogLogger returns the logger namespace reserved for the post catalog.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// LintLogger returns the logger namespace reserved for hygiene checks.
func LintLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, lintModule)
}

// ExporterLogger returns the logger namespace reserved for artifact exports.
func ExporterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, exporterModule)
}

// WatchLogger returns the logger namespace reserved for filesystem watchers.
func WatchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, watchModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown parsing.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithPostContext enriches the provided logger with common post fields such as
// file path, slug, and sync action. Empty values are ignored.
func WithPostContext(logger interfaces.Logger, path, slug, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldPostPath] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldPostSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldPostAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
