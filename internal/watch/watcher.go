package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// DefaultDebounce is the quiet period collected changes wait before the
// handler fires. Editors often write a file several times per save; the
// window folds those into one batch.
const DefaultDebounce = 400 * time.Millisecond

var defaultExtensions = []string{".md", ".markdown"}

// Handler receives one deduplicated batch of changed paths, relative to the
// watched root and sorted.
type Handler func(ctx context.Context, paths []string)

// Config controls what the watcher observes.
type Config struct {
	// Root is the content directory to watch recursively.
	Root string
	// Extensions filters events to matching files. Defaults to Markdown.
	Extensions []string
	// Debounce overrides the quiet period. Zero means DefaultDebounce.
	Debounce time.Duration
}

// Option customizes a Watcher.
type Option func(*Watcher)

// WithLogger attaches a logger for watch activity.
func WithLogger(logger interfaces.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher observes a content tree and reports settled change batches.
type Watcher struct {
	root       string
	extensions map[string]struct{}
	debounce   time.Duration
	handler    Handler
	logger     interfaces.Logger
}

// New validates the configuration and builds a watcher. Run starts it.
func New(cfg Config, handler Handler, opts ...Option) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch: handler is required")
	}
	root := strings.TrimSpace(cfg.Root)
	if root == "" {
		return nil, errors.New("watch: root directory is required")
	}

	extensions := cfg.Extensions
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}
	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extSet[ext] = struct{}{}
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher := &Watcher{
		root:       filepath.Clean(root),
		extensions: extSet,
		debounce:   debounce,
		handler:    handler,
	}
	for _, opt := range opts {
		opt(watcher)
	}
	return watcher, nil
}

// Run watches until the context is cancelled. Batches fire on the
// configured quiet period; the handler runs on the watch goroutine, so a
// slow handler delays the next batch rather than stacking up.
func (w *Watcher) Run(ctx context.Context) error {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer notifier.Close()

	if err := w.addRecursive(notifier, w.root); err != nil {
		return err
	}

	if w.logger != nil {
		w.logger.Info("watching content tree", "root", w.root, "debounce", w.debounce.String())
	}

	pending := map[string]struct{}{}
	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-notifier.Events:
			if !ok {
				return errors.New("watch: events channel closed")
			}
			path, ok := w.screen(notifier, event)
			if !ok {
				continue
			}
			pending[path] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-notifier.Errors:
			if !ok {
				return errors.New("watch: errors channel closed")
			}
			if w.logger != nil {
				w.logger.Warn("watch error", "error", err)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			batch := drainPending(pending)
			if len(batch) == 0 {
				continue
			}
			if w.logger != nil {
				w.logger.Debug("change batch settled", "files", len(batch))
			}
			w.handler(ctx, batch)
		}
	}
}

// screen filters an event down to a reportable relative path. Directory
// creations extend the watch instead of reporting.
func (w *Watcher) screen(notifier *fsnotify.Watcher, event fsnotify.Event) (string, bool) {
	const ops = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename
	if event.Op&ops == 0 {
		return "", false
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return "", false
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(notifier, event.Name); err != nil && w.logger != nil {
				w.logger.Warn("watch new directory", "path", event.Name, "error", err)
			}
			return "", false
		}
	}

	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := w.extensions[ext]; !ok {
		return "", false
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		rel = event.Name
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

func (w *Watcher) addRecursive(notifier *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		return notifier.Add(path)
	})
}

func drainPending(pending map[string]struct{}) []string {
	if len(pending) == 0 {
		return nil
	}
	batch := make([]string, 0, len(pending))
	for path := range pending {
		batch = append(batch, path)
		delete(pending, path)
	}
	sort.Strings(batch)
	return batch
}
