package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// DefaultPattern matches every Markdown file under the scan root.
const DefaultPattern = "**/*.md"

// defaultExtensions lists the file extensions treated as Markdown when no
// explicit set is configured.
var defaultExtensions = []string{".md", ".markdown"}

// LoaderConfig configures how post files are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory where post files live.
	BasePath string
	// Pattern limits discovered files to those matching the supplied
	// doublestar glob (defaults to "**/*.md").
	Pattern string
	// Extensions restricts which file extensions are considered Markdown.
	Extensions []string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// IncludeSectionIndexes keeps _index.md section stubs in the result set.
	// They are skipped by default since they describe sections, not posts.
	IncludeSectionIndexes bool
}

// Loader turns filesystem paths into post documents with metadata.
type Loader struct {
	fs                    fs.FS
	basePath              string
	pattern               string
	extensions            []string
	recursive             bool
	includeSectionIndexes bool
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = DefaultPattern
	}

	extensions := normalizeExtensions(cfg.Extensions)
	if len(extensions) == 0 {
		extensions = append([]string(nil), defaultExtensions...)
	}

	return &Loader{
		fs:                    filesystem,
		basePath:              filepath.Clean(cfg.BasePath),
		pattern:               pattern,
		extensions:            extensions,
		recursive:             cfg.Recursive,
		includeSectionIndexes: cfg.IncludeSectionIndexes,
	}
}

// LoadFile reads and parses a single post document.
func (l *Loader) LoadFile(ctx context.Context, path string, opts LoadParams) (*DocumentResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("post loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("post loader stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]

	return &DocumentResult{
		Document: doc,
		Source:   data,
	}, nil
}

// LoadDirectory discovers post files under dir and returns parsed documents
// sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts LoadParams) ([]*DocumentResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.Clean(root)

	var results []*DocumentResult

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return fs.SkipDir
			}
			if !l.shouldRecurse(root, path, opts.Recursive) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !l.wants(rel, opts) {
			return nil
		}

		result, err := l.LoadFile(ctx, rel, opts)
		if err != nil {
			return err
		}
		results = append(results, result)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Document.FilePath < results[j].Document.FilePath
	})

	return results, nil
}

func (l *Loader) shouldRecurse(root, current string, override *bool) bool {
	recursive := l.recursive
	if override != nil {
		recursive = *override
	}
	if recursive {
		return true
	}
	// If recursion is disabled, only walk the root directory.
	return filepath.Clean(root) == filepath.Clean(current)
}

// wants reports whether a walked file belongs in the result set: Markdown
// extension, glob match, not a dotfile, and not a section stub unless those
// are included.
func (l *Loader) wants(path string, opts LoadParams) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	if !l.includeSectionIndexes && (name == "_index.md" || name == "_index.markdown") {
		return false
	}
	if !l.hasMarkdownExtension(name, opts.Extensions) {
		return false
	}
	return l.matchesPattern(path, opts.Pattern)
}

func (l *Loader) hasMarkdownExtension(name string, override []string) bool {
	extensions := normalizeExtensions(override)
	if len(extensions) == 0 {
		extensions = l.extensions
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, candidate := range extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

func (l *Loader) matchesPattern(path string, override string) bool {
	pattern := strings.TrimSpace(override)
	if pattern == "" {
		pattern = l.pattern
	}
	pattern = filepath.ToSlash(pattern)

	// fs.WalkDir yields slash-separated paths, which is what doublestar
	// expects. Match against the base name when the pattern has no slashes so
	// "*.md" behaves the way shell users assume.
	target := path
	if !strings.Contains(pattern, "/") {
		target = filepath.Base(path)
	}

	match, err := doublestar.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("post loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("post loader: make relative %s: %w", path, err)
	}
	return rel, nil
}

// DocumentResult carries the parsed document along with the raw source.
type DocumentResult struct {
	Document *interfaces.Document
	Source   []byte
}

// LoadParams provide call-specific overrides for pattern and extension matching.
type LoadParams struct {
	Pattern    string
	Extensions []string
	Recursive  *bool
}

func normalizeExtensions(input []string) []string {
	out := make([]string, 0, len(input))
	for _, ext := range input {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
