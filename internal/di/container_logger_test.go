package di_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-posts/internal/di"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

func TestContainerAnnotatesServiceLoggers(t *testing.T) {
	cfg := testConfig(t)
	cfg.Features.Logger = true

	rec := newRecordingProvider()

	container, err := di.NewContainer(cfg, di.WithLoggerProvider(rec))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { container.Close() })

	mdEntry := rec.find("markdown.configured")
	if mdEntry == nil {
		t.Fatalf("expected markdown.configured log entry, got %#v", rec.entries)
	}
	if got := mdEntry.fields["module"]; got != "posts.markdown" {
		t.Fatalf("expected module field to be posts.markdown, got %v", got)
	}

	entry := rec.find("catalog.configured")
	if entry == nil {
		t.Fatalf("expected catalog.configured log entry, got %#v", rec.entries)
	}
	if got := entry.fields["storage"]; got != "memory" {
		t.Fatalf("expected storage field to be memory, got %v", got)
	}
	if got := entry.fields["module"]; got != "posts.catalog" {
		t.Fatalf("expected module field to be posts.catalog, got %v", got)
	}

	lintEntry := rec.find("lint.configured")
	if lintEntry == nil {
		t.Fatalf("expected lint.configured log entry, got %#v", rec.entries)
	}
	if got := lintEntry.fields["module"]; got != "posts.lint" {
		t.Fatalf("expected module field to be posts.lint, got %v", got)
	}

	exportEntry := rec.find("export.configured")
	if exportEntry == nil {
		t.Fatalf("expected export.configured log entry, got %#v", rec.entries)
	}
	if got := exportEntry.fields["output_dir"]; got != cfg.Export.OutputDir {
		t.Fatalf("expected output_dir field %q, got %v", cfg.Export.OutputDir, got)
	}
}

type recordingProvider struct {
	entries []recordedEntry
}

type recordedEntry struct {
	level  string
	msg    string
	fields map[string]any
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{entries: []recordedEntry{}}
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	return &recordingLogger{
		provider: p,
		fields: map[string]any{
			"logger": name,
		},
	}
}

func (p *recordingProvider) record(entry recordedEntry) {
	p.entries = append(p.entries, entry)
}

func (p *recordingProvider) find(msg string) *recordedEntry {
	for i := range p.entries {
		if p.entries[i].msg == msg {
			return &p.entries[i]
		}
	}
	return nil
}

type recordingLogger struct {
	provider *recordingProvider
	fields   map[string]any
}

var _ interfaces.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) Trace(msg string, args ...any) { l.log("TRACE", msg, args...) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args...) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.log("INFO", msg, args...) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.log("WARN", msg, args...) }
func (l *recordingLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args...) }
func (l *recordingLogger) Fatal(msg string, args ...any) { l.log("FATAL", msg, args...) }

func (l *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	for key, value := range l.fields {
		merged[key] = value
	}
	for key, value := range fields {
		merged[key] = value
	}
	return &recordingLogger{
		provider: l.provider,
		fields:   merged,
	}
}

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger {
	return &recordingLogger{
		provider: l.provider,
		fields:   cloneFields(l.fields),
	}
}

func (l *recordingLogger) log(level, msg string, args ...any) {
	fields := cloneFields(l.fields)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			break
		}
		key, _ := args[i].(string)
		if key == "" {
			continue
		}
		fields[key] = args[i+1]
	}
	l.provider.record(recordedEntry{
		level:  level,
		msg:    msg,
		fields: fields,
	})
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}
