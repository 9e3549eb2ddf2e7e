package exporter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-posts/internal/catalog"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Artifact names as written under the output directory.
const (
	ArtifactFeed     = "feed.xml"
	ArtifactAtom     = "atom.xml"
	ArtifactSitemap  = "sitemap.xml"
	ArtifactRobots   = "robots.txt"
	ArtifactManifest = "manifest.json"
)

// ErrSourceRequired is returned when no post source is supplied.
var ErrSourceRequired = errors.New("exporter: post source is required")

// PostSource lists catalog posts for export. Both catalog.Service and its
// repositories satisfy it.
type PostSource interface {
	List(ctx context.Context, opts catalog.ListOptions) ([]*catalog.Post, int, error)
}

// Config controls export output and site identity.
type Config struct {
	BaseURL         string
	OutputDir       string
	SiteTitle       string
	SiteDescription string
	Workers         int
}

type siteMeta struct {
	Title       string
	Description string
	BaseURL     string
}

// Options tune a single export run.
type Options struct {
	// IncludeDrafts adds draft posts to the manifest. Feeds and the sitemap
	// always exclude drafts.
	IncludeDrafts bool
	// Only restricts the run to the named artifacts. Empty means all.
	Only []string
}

// Artifact describes one written output.
type Artifact struct {
	Name     string
	Path     string
	Size     int64
	Checksum string
}

// Result summarizes an export run.
type Result struct {
	GeneratedAt time.Time
	Posts       int
	Artifacts   []Artifact
}

type artifactJob struct {
	name        string
	contentType string
	render      func() (string, error)
}

// Service renders catalog posts into data artifacts for external consumers.
type Service struct {
	cfg    Config
	source PostSource
	links  *Permalinks
	writer ArtifactWriter
	logger interfaces.Logger
	now    func() time.Time
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithLogger attaches a logger for run summaries.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWriter replaces the filesystem writer.
func WithWriter(writer ArtifactWriter) ServiceOption {
	return func(s *Service) {
		if writer != nil {
			s.writer = writer
		}
	}
}

// WithClock overrides the generation timestamp source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds an export service against a post source.
func New(cfg Config, source PostSource, opts ...ServiceOption) (*Service, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	links, err := NewPermalinks(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	svc := &Service{
		cfg:    cfg,
		source: source,
		links:  links,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.writer == nil {
		svc.writer = NewFSWriter(cfg.OutputDir)
	}
	return svc, nil
}

// Permalinks exposes the link builder artifacts share.
func (s *Service) Permalinks() *Permalinks {
	return s.links
}

// Export renders every selected artifact and writes it through the
// configured writer. Artifacts render concurrently; the first failure
// aborts the run.
func (s *Service) Export(ctx context.Context, opts Options) (*Result, error) {
	published, _, err := s.source.List(ctx, catalog.ListOptions{Sort: catalog.SortDateDesc})
	if err != nil {
		return nil, fmt.Errorf("exporter: list posts: %w", err)
	}

	manifestPosts := published
	if opts.IncludeDrafts {
		manifestPosts, _, err = s.source.List(ctx, catalog.ListOptions{
			Drafts: catalog.DraftsInclude,
			Sort:   catalog.SortDateDesc,
		})
		if err != nil {
			return nil, fmt.Errorf("exporter: list posts with drafts: %w", err)
		}
	}

	generatedAt := s.now().UTC()
	site := s.siteMeta()

	items, err := buildFeedItems(published, s.links)
	if err != nil {
		return nil, err
	}
	entries, err := buildSitemapEntries(published, s.links)
	if err != nil {
		return nil, err
	}
	manifest, err := buildManifest(manifestPosts, s.links, generatedAt)
	if err != nil {
		return nil, err
	}

	jobs := []artifactJob{
		{name: ArtifactFeed, contentType: "application/rss+xml", render: func() (string, error) {
			return buildRSSFeed(site, items, generatedAt), nil
		}},
		{name: ArtifactAtom, contentType: "application/atom+xml", render: func() (string, error) {
			return buildAtomFeed(site, items, generatedAt), nil
		}},
		{name: ArtifactSitemap, contentType: "application/xml", render: func() (string, error) {
			return buildSitemap(entries), nil
		}},
		{name: ArtifactRobots, contentType: "text/plain", render: func() (string, error) {
			return buildRobots(s.cfg.BaseURL), nil
		}},
		{name: ArtifactManifest, contentType: "application/json", render: func() (string, error) {
			raw, err := manifest.marshal()
			if err != nil {
				return "", err
			}
			return string(raw) + "\n", nil
		}},
	}

	selected, err := filterJobs(jobs, opts.Only)
	if err != nil {
		return nil, err
	}

	if err := s.writer.EnsureDir(ctx, "."); err != nil {
		return nil, fmt.Errorf("exporter: ensure output dir: %w", err)
	}

	artifacts, err := s.writeConcurrently(ctx, selected)
	if err != nil {
		return nil, err
	}

	result := &Result{
		GeneratedAt: generatedAt,
		Posts:       len(published),
		Artifacts:   artifacts,
	}

	if s.logger != nil {
		s.logger.Info("export complete",
			"posts", result.Posts,
			"artifacts", len(result.Artifacts),
			"output", s.cfg.OutputDir,
		)
	}

	return result, nil
}

func (s *Service) writeConcurrently(ctx context.Context, jobs []artifactJob) ([]Artifact, error) {
	workers := s.effectiveWorkerCount(len(jobs))

	jobsCh := make(chan artifactJob)
	var wg sync.WaitGroup
	var mu sync.Mutex
	artifacts := make([]Artifact, 0, len(jobs))
	var runErr error

	collect := func(artifact Artifact, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			if runErr == nil {
				runErr = err
			}
			return
		}
		artifacts = append(artifacts, artifact)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobsCh {
				select {
				case <-ctx.Done():
					collect(Artifact{}, ctx.Err())
					return
				default:
					collect(s.writeArtifact(ctx, job))
				}
			}
		}()
	}

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			close(jobsCh)
			wg.Wait()
			return nil, ctx.Err()
		case jobsCh <- job:
		}
	}
	close(jobsCh)
	wg.Wait()

	if runErr != nil {
		return nil, runErr
	}
	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Name < artifacts[j].Name
	})
	return artifacts, nil
}

func (s *Service) writeArtifact(ctx context.Context, job artifactJob) (Artifact, error) {
	content, err := job.render()
	if err != nil {
		return Artifact{}, fmt.Errorf("exporter: render %s: %w", job.name, err)
	}

	checksum := contentChecksum(content)
	req := WriteRequest{
		Path:        job.name,
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		ContentType: job.contentType,
		Checksum:    checksum,
	}
	if err := s.writer.WriteFile(ctx, req); err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Name:     job.name,
		Path:     filepath.Join(s.cfg.OutputDir, job.name),
		Size:     req.Size,
		Checksum: checksum,
	}, nil
}

func (s *Service) siteMeta() siteMeta {
	title := strings.TrimSpace(s.cfg.SiteTitle)
	if title == "" {
		title = s.links.Base()
	}
	description := strings.TrimSpace(s.cfg.SiteDescription)
	if description == "" {
		description = "Latest posts"
	}
	return siteMeta{
		Title:       title,
		Description: description,
		BaseURL:     s.links.Base(),
	}
}

func (s *Service) effectiveWorkerCount(jobCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if jobCount > 0 && workers > jobCount {
		workers = jobCount
	}
	return workers
}

func filterJobs(jobs []artifactJob, only []string) ([]artifactJob, error) {
	if len(only) == 0 {
		return jobs, nil
	}
	byName := make(map[string]artifactJob, len(jobs))
	for _, job := range jobs {
		byName[job.name] = job
	}
	selected := make([]artifactJob, 0, len(only))
	seen := map[string]struct{}{}
	for _, name := range only {
		key := strings.TrimSpace(name)
		job, ok := byName[key]
		if !ok {
			return nil, fmt.Errorf("exporter: unknown artifact %q", name)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		selected = append(selected, job)
	}
	return selected, nil
}

func contentChecksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
