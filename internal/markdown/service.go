package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Config controls how the post service discovers and parses files.
type Config struct {
	BasePath              string
	Pattern               string
	Extensions            []string
	Recursive             bool
	IncludeSectionIndexes bool
	Renderer              interfaces.RenderOptions
}

// Service implements interfaces.PostService for filesystem-backed documents.
type Service struct {
	cfg      Config
	renderer interfaces.MarkdownRenderer
	loader   *Loader
}

// NewService constructs a post service using an underlying loader. When
// renderer is nil, a Goldmark renderer with the provided default options is
// created. When filesystem is nil, the base path is opened from the OS.
func NewService(cfg Config, filesystem fs.FS, renderer interfaces.MarkdownRenderer) (*Service, error) {
	if filesystem == nil {
		prepared, err := prepareFilesystem(cfg.BasePath)
		if err != nil {
			return nil, err
		}
		filesystem = prepared
	}

	if renderer == nil {
		renderer = NewGoldmarkRenderer(cfg.Renderer)
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:              cfg.BasePath,
		Pattern:               cfg.Pattern,
		Extensions:            cfg.Extensions,
		Recursive:             cfg.Recursive,
		IncludeSectionIndexes: cfg.IncludeSectionIndexes,
	})

	return &Service{
		cfg:      cfg,
		renderer: renderer,
		loader:   loader,
	}, nil
}

// Loader exposes the underlying loader for callers that need raw results.
func (s *Service) Loader() *Loader {
	return s.loader
}

// Load reads a single post document relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.ScanOptions) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalizePath(path), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// LoadDirectory reads every post document within the supplied directory.
// Results are sorted by path; bodies are left unrendered so callers only pay
// for HTML when they ask for it.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.ScanOptions) ([]*interfaces.Document, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalizePath(dir), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		docs = append(docs, result.Document)
	}
	return docs, nil
}

// Render parses Markdown bytes into HTML using the configured renderer.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.RenderOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.renderer.RenderWithOptions(markdown, mergeRenderOptions(s.cfg.Renderer, opts))
}

// RenderDocument converts the document's Markdown body into HTML and caches
// the result on the document.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.RenderOptions) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("post service: document is nil")
	}
	html, err := s.Render(ctx, doc.Body, opts)
	if err != nil {
		return nil, fmt.Errorf("post render document %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = html
	return html, nil
}

func (s *Service) normalizePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func mergeRenderOptions(base, override interfaces.RenderOptions) interfaces.RenderOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}

func toLoaderParams(opts interfaces.ScanOptions) LoadParams {
	return LoadParams{
		Pattern:    opts.Pattern,
		Extensions: opts.Extensions,
		Recursive:  opts.Recursive,
	}
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("post service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
