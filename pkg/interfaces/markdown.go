package interfaces

import (
	"context"
	"time"
)

// MarkdownRenderer defines how raw Markdown bytes are converted into an HTML
// fragment. Implementations should be reusable across calls; rendering stops
// at fragments, page assembly belongs to whatever site generator consumes the
// content tree.
type MarkdownRenderer interface {
	// Render converts Markdown into HTML using the renderer's default settings.
	Render(markdown []byte) ([]byte, error)
	// RenderWithOptions converts Markdown into HTML using the supplied overrides.
	RenderWithOptions(markdown []byte, opts RenderOptions) ([]byte, error)
}

// RenderOptions customises Markdown rendering behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type RenderOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// PostService exposes the file-centric workflows: discover post files, parse
// their frontmatter, and render bodies on demand.
type PostService interface {
	Load(ctx context.Context, path string, opts ScanOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts ScanOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts RenderOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts RenderOptions) ([]byte, error)
}

// Document represents a Markdown post file with parsed metadata and content.
// The struct is shared between the interfaces package and internal
// implementations so consumers can depend on a stable contract.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	Size         int64
	LastModified time.Time
	// Checksum stores a digest of the original file content (typically SHA-256)
	// so sync workflows can detect changes without re-reading unchanged files.
	Checksum []byte
}

// FrontMatter models the YAML metadata block at the top of a post. Date stays
// a raw string so hygiene checks can report unparseable values instead of the
// decoder rejecting the whole file; parsing happens downstream.
type FrontMatter struct {
	Title       string         `yaml:"title" json:"title"`
	Slug        string         `yaml:"slug" json:"slug"`
	Description string         `yaml:"description" json:"description"`
	Date        string         `yaml:"date" json:"date"`
	Draft       bool           `yaml:"draft" json:"draft"`
	Tags        []string       `yaml:"tags" json:"tags"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
	Raw         map[string]any `yaml:"-" json:"raw"`
}

// ScanOptions fine-tunes how documents are discovered and parsed from disk.
type ScanOptions struct {
	Recursive  *bool
	Pattern    string
	Extensions []string
	Renderer   RenderOptions
}
