package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteRequest describes one artifact write routed through the writer seam.
type WriteRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	ContentType string
	Checksum    string
}

// ArtifactWriter abstracts where exported artifacts land. The default
// implementation writes to the local filesystem; alternatives can ship
// artifacts to object storage without touching the export pipeline.
type ArtifactWriter interface {
	EnsureDir(ctx context.Context, dir string) error
	WriteFile(ctx context.Context, req WriteRequest) error
}

type fsWriter struct {
	root string
}

// NewFSWriter returns a writer that lands artifacts under root. Files are
// written to a temp name first and renamed into place, so consumers never
// observe a partial artifact.
func NewFSWriter(root string) ArtifactWriter {
	return &fsWriter{root: root}
}

func (w *fsWriter) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := w.root
	if trimmed := strings.TrimSpace(dir); trimmed != "" && trimmed != "." {
		target = filepath.Join(w.root, filepath.FromSlash(trimmed))
	}
	if target == "" {
		return nil
	}
	return os.MkdirAll(target, 0o755)
}

func (w *fsWriter) WriteFile(ctx context.Context, req WriteRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Content == nil {
		return errors.New("exporter: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("exporter: write requires path")
	}

	target := filepath.Join(w.root, filepath.FromSlash(req.Path))
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("exporter: ensure %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return fmt.Errorf("exporter: temp file for %s: %w", req.Path, err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, req.Content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("exporter: write %s: %w", req.Path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("exporter: close %s: %w", req.Path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("exporter: chmod %s: %w", req.Path, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("exporter: publish %s: %w", req.Path, err)
	}
	return nil
}
