package contentcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-posts/internal/catalog"
	"github.com/goliatone/go-posts/internal/exporter"
	"github.com/goliatone/go-posts/internal/lint"
	"github.com/goliatone/go-posts/pkg/interfaces"
	goerrors "github.com/goliatone/go-errors"
)

type stubCatalog struct {
	syncCalls []catalog.SyncOptions
	result    *catalog.SyncResult
	err       error
}

func (s *stubCatalog) Sync(_ context.Context, opts catalog.SyncOptions) (*catalog.SyncResult, error) {
	s.syncCalls = append(s.syncCalls, opts)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubLoader struct {
	dirs []string
	docs []*interfaces.Document
	err  error
}

func (s *stubLoader) LoadDirectory(_ context.Context, dir string, _ interfaces.ScanOptions) ([]*interfaces.Document, error) {
	s.dirs = append(s.dirs, dir)
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}

type stubLinter struct {
	report    *lint.Report
	threshold lint.Severity
	err       error
}

func (s *stubLinter) Run(context.Context, []*interfaces.Document) (*lint.Report, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func (s *stubLinter) Threshold() lint.Severity {
	if s.threshold == "" {
		return lint.SeverityError
	}
	return s.threshold
}

type stubExporter struct {
	optsSeen []exporter.Options
	result   *exporter.Result
	err      error
}

func (s *stubExporter) Export(_ context.Context, opts exporter.Options) (*exporter.Result, error) {
	s.optsSeen = append(s.optsSeen, opts)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestSyncCatalogHandlerInvokesService(t *testing.T) {
	service := &stubCatalog{
		result: &catalog.SyncResult{Created: 2, Unchanged: 5},
	}
	handler, err := NewSyncCatalogHandler(service, nil)
	if err != nil {
		t.Fatalf("NewSyncCatalogHandler: %v", err)
	}

	msg := SyncCatalogCommand{Directory: "content/posts", Prune: true, DryRun: true}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if len(service.syncCalls) != 1 {
		t.Fatalf("expected one sync call, got %d", len(service.syncCalls))
	}
	opts := service.syncCalls[0]
	if opts.Dir != "content/posts" || !opts.Prune || !opts.DryRun {
		t.Fatalf("unexpected sync options: %+v", opts)
	}
}

func TestSyncCatalogHandlerRejectsBlankDirectory(t *testing.T) {
	service := &stubCatalog{result: &catalog.SyncResult{}}
	handler, err := NewSyncCatalogHandler(service, nil)
	if err != nil {
		t.Fatalf("NewSyncCatalogHandler: %v", err)
	}

	err = handler.Execute(context.Background(), SyncCatalogCommand{Directory: "   "})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(service.syncCalls) != 0 {
		t.Fatal("expected service not to be called")
	}
}

func TestSyncCatalogHandlerPropagatesServiceError(t *testing.T) {
	serviceErr := errors.New("walk failed")
	handler, err := NewSyncCatalogHandler(&stubCatalog{err: serviceErr}, nil)
	if err != nil {
		t.Fatalf("NewSyncCatalogHandler: %v", err)
	}

	err = handler.Execute(context.Background(), SyncCatalogCommand{})
	if !errors.Is(err, serviceErr) {
		t.Fatalf("expected service error to propagate, got %v", err)
	}
}

func TestLintContentHandlerPassesCleanReport(t *testing.T) {
	loader := &stubLoader{}
	linter := &stubLinter{report: &lint.Report{Checked: 4}}
	handler, err := NewLintContentHandler(loader, linter, nil)
	if err != nil {
		t.Fatalf("NewLintContentHandler: %v", err)
	}

	if err := handler.Execute(context.Background(), LintContentCommand{Directory: "content/posts"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(loader.dirs) != 1 || loader.dirs[0] != "content/posts" {
		t.Fatalf("unexpected loader dirs: %v", loader.dirs)
	}
}

func TestLintContentHandlerFailsAtThreshold(t *testing.T) {
	linter := &stubLinter{report: &lint.Report{Checked: 4, Errors: 2}}
	handler, err := NewLintContentHandler(&stubLoader{}, linter, nil)
	if err != nil {
		t.Fatalf("NewLintContentHandler: %v", err)
	}

	err = handler.Execute(context.Background(), LintContentCommand{})
	if !errors.Is(err, ErrHygieneFailed) {
		t.Fatalf("expected ErrHygieneFailed, got %v", err)
	}
}

func TestLintContentHandlerHonoursThresholdOverride(t *testing.T) {
	// Warnings only: the configured error threshold passes, the override fails.
	linter := &stubLinter{report: &lint.Report{Checked: 4, Warnings: 3}}
	handler, err := NewLintContentHandler(&stubLoader{}, linter, nil)
	if err != nil {
		t.Fatalf("NewLintContentHandler: %v", err)
	}

	if err := handler.Execute(context.Background(), LintContentCommand{}); err != nil {
		t.Fatalf("expected warnings to pass at error threshold, got %v", err)
	}

	err = handler.Execute(context.Background(), LintContentCommand{Threshold: "warning"})
	if !errors.Is(err, ErrHygieneFailed) {
		t.Fatalf("expected ErrHygieneFailed at warning threshold, got %v", err)
	}
}

func TestLintContentHandlerRejectsUnknownThreshold(t *testing.T) {
	handler, err := NewLintContentHandler(&stubLoader{}, &stubLinter{report: &lint.Report{}}, nil)
	if err != nil {
		t.Fatalf("NewLintContentHandler: %v", err)
	}

	err = handler.Execute(context.Background(), LintContentCommand{Threshold: "fatal"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestExportArtifactsHandlerInvokesService(t *testing.T) {
	service := &stubExporter{result: &exporter.Result{Posts: 2}}
	handler, err := NewExportArtifactsHandler(service, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("NewExportArtifactsHandler: %v", err)
	}

	msg := ExportArtifactsCommand{IncludeDrafts: true, Only: []string{exporter.ArtifactManifest}}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if len(service.optsSeen) != 1 {
		t.Fatalf("expected one export call, got %d", len(service.optsSeen))
	}
	opts := service.optsSeen[0]
	if !opts.IncludeDrafts {
		t.Fatal("expected include drafts to pass through")
	}
	if len(opts.Only) != 1 || opts.Only[0] != exporter.ArtifactManifest {
		t.Fatalf("unexpected artifact selection: %v", opts.Only)
	}
}

func TestExportArtifactsHandlerSkipsFeedsWhenGated(t *testing.T) {
	service := &stubExporter{result: &exporter.Result{}}
	handler, err := NewExportArtifactsHandler(service, nil, FeatureGates{
		FeedsEnabled: func() bool { return false },
	})
	if err != nil {
		t.Fatalf("NewExportArtifactsHandler: %v", err)
	}

	if err := handler.Execute(context.Background(), ExportArtifactsCommand{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	opts := service.optsSeen[0]
	want := map[string]bool{
		exporter.ArtifactSitemap:  true,
		exporter.ArtifactRobots:   true,
		exporter.ArtifactManifest: true,
	}
	if len(opts.Only) != len(want) {
		t.Fatalf("unexpected artifact selection: %v", opts.Only)
	}
	for _, name := range opts.Only {
		if !want[name] {
			t.Fatalf("unexpected artifact %q in gated selection", name)
		}
	}
}

func TestExportArtifactsHandlerRejectsUnknownArtifact(t *testing.T) {
	service := &stubExporter{result: &exporter.Result{}}
	handler, err := NewExportArtifactsHandler(service, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("NewExportArtifactsHandler: %v", err)
	}

	err = handler.Execute(context.Background(), ExportArtifactsCommand{Only: []string{"nope.xml"}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(service.optsSeen) != 0 {
		t.Fatal("expected exporter not to be called")
	}
}

func TestRegisterContentCommandsRequiresServices(t *testing.T) {
	_, err := RegisterContentCommands(nil, Services{}, nil, FeatureGates{})
	if err == nil {
		t.Fatal("expected registration error for missing services")
	}
}

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterContentCommandsWiresHandlerSet(t *testing.T) {
	reg := &recordingRegistry{}
	services := Services{
		Catalog:  &stubCatalog{result: &catalog.SyncResult{}},
		Loader:   &stubLoader{},
		Linter:   &stubLinter{report: &lint.Report{}},
		Exporter: &stubExporter{result: &exporter.Result{}},
	}

	set, err := RegisterContentCommands(reg, services, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("RegisterContentCommands: %v", err)
	}

	if set.Sync == nil || set.Lint == nil || set.Export == nil {
		t.Fatalf("incomplete handler set: %+v", set)
	}
	if len(reg.handlers) != 3 {
		t.Fatalf("expected three registered handlers, got %d", len(reg.handlers))
	}
}

func TestRegisterContentCommandsPropagatesRegistryError(t *testing.T) {
	regErr := errors.New("registry full")
	reg := &recordingRegistry{err: regErr}
	services := Services{
		Catalog:  &stubCatalog{result: &catalog.SyncResult{}},
		Loader:   &stubLoader{},
		Linter:   &stubLinter{report: &lint.Report{}},
		Exporter: &stubExporter{result: &exporter.Result{}},
	}

	if _, err := RegisterContentCommands(reg, services, nil, FeatureGates{}); !errors.Is(err, regErr) {
		t.Fatalf("expected registry error, got %v", err)
	}
}
