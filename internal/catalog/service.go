package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-posts/internal/identity"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// ErrPostsServiceRequired signals a service constructed without a loader.
var ErrPostsServiceRequired = errors.New("catalog: post service is required")

// ErrRepositoryRequired signals a service constructed without storage.
var ErrRepositoryRequired = errors.New("catalog: post repository is required")

// service keeps the catalog in step with the content tree and answers
// queries over it.
type service struct {
	posts  interfaces.PostService
	repo   PostRepository
	logger interfaces.Logger
	now    func() time.Time
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger attaches a logger for sync progress reporting.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the loader and repository into a catalog service.
func NewService(posts interfaces.PostService, repo PostRepository, opts ...ServiceOption) (Service, error) {
	if posts == nil {
		return nil, ErrPostsServiceRequired
	}
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	svc := &service{
		posts: posts,
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// Sync loads the content tree and upserts one row per post. Re-running over
// an unchanged tree reports every post unchanged and writes nothing. A slug
// collision keeps the first file and records the rest as failures; hygiene
// checks surface the same collision with full detail.
func (s *service) Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	docs, err := s.posts.LoadDirectory(ctx, opts.Dir, interfaces.ScanOptions{})
	if err != nil {
		return nil, fmt.Errorf("catalog sync load: %w", err)
	}

	result := &SyncResult{}
	now := s.now()
	seen := make(map[uuid.UUID]string, len(docs))

	for _, doc := range docs {
		post, err := PostFromDocument(doc, now)
		if err != nil {
			result.Failures = append(result.Failures, SyncFailure{Path: doc.FilePath, Err: err})
			continue
		}

		if firstPath, ok := seen[post.ID]; ok {
			result.Failures = append(result.Failures, SyncFailure{
				Path: doc.FilePath,
				Err:  fmt.Errorf("catalog: slug %q already used by %s", post.Slug, firstPath),
			})
			continue
		}
		seen[post.ID] = doc.FilePath

		existing, err := s.repo.GetBySlug(ctx, post.Slug)
		switch {
		case err == nil && existing.Checksum == post.Checksum:
			result.Unchanged++
			continue
		case err == nil:
			post.CreatedAt = existing.CreatedAt
			if !opts.DryRun {
				if _, err := s.repo.Upsert(ctx, post); err != nil {
					result.Failures = append(result.Failures, SyncFailure{Path: doc.FilePath, Err: err})
					continue
				}
				s.logAction(doc.FilePath, post.Slug, "updated")
			}
			result.Updated++
		case IsNotFound(err):
			if !opts.DryRun {
				if _, err := s.repo.Upsert(ctx, post); err != nil {
					result.Failures = append(result.Failures, SyncFailure{Path: doc.FilePath, Err: err})
					continue
				}
				s.logAction(doc.FilePath, post.Slug, "created")
			}
			result.Created++
		default:
			result.Failures = append(result.Failures, SyncFailure{Path: doc.FilePath, Err: err})
		}
	}

	if opts.Prune {
		removed, err := s.prune(ctx, seen, opts.DryRun)
		if err != nil {
			return result, err
		}
		result.Removed = removed
	}

	if s.logger != nil {
		s.logger.Info("catalog sync complete",
			"created", result.Created,
			"updated", result.Updated,
			"unchanged", result.Unchanged,
			"removed", result.Removed,
			"failures", len(result.Failures),
		)
	}

	return result, nil
}

func (s *service) prune(ctx context.Context, keep map[uuid.UUID]string, dryRun bool) (int, error) {
	existing, _, err := s.repo.List(ctx, ListOptions{Drafts: DraftsInclude})
	if err != nil {
		return 0, fmt.Errorf("catalog prune list: %w", err)
	}

	removed := 0
	for _, post := range existing {
		if _, ok := keep[post.ID]; ok {
			continue
		}
		if !dryRun {
			if err := s.repo.Delete(ctx, post.ID); err != nil {
				return removed, fmt.Errorf("catalog prune %s: %w", post.Slug, err)
			}
			s.logAction(post.Path, post.Slug, "removed")
		}
		removed++
	}
	return removed, nil
}

// logAction records one applied catalog mutation at debug level.
func (s *service) logAction(path, slug, action string) {
	if s.logger == nil {
		return
	}
	logging.WithPostContext(s.logger, path, slug, action).Debug("catalog sync applied")
}

// List queries the catalog.
func (s *service) List(ctx context.Context, opts ListOptions) ([]*Post, int, error) {
	return s.repo.List(ctx, opts)
}

// Get retrieves one post by ID.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug retrieves one post by its effective slug.
func (s *service) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	return s.repo.GetBySlug(ctx, strings.TrimSpace(slug))
}

// Tags returns tag usage across the whole catalog, drafts included, ordered
// by descending count then name.
func (s *service) Tags(ctx context.Context) ([]TagCount, error) {
	posts, _, err := s.repo.List(ctx, ListOptions{Drafts: DraftsInclude})
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	display := map[string]string{}
	for _, post := range posts {
		for _, tag := range post.Tags {
			key := strings.ToLower(strings.TrimSpace(tag))
			if key == "" {
				continue
			}
			counts[key]++
			if _, ok := display[key]; !ok {
				display[key] = strings.TrimSpace(tag)
			}
		}
	}

	out := make([]TagCount, 0, len(counts))
	for key, count := range counts {
		out = append(out, TagCount{ID: identity.TagUUID(key), Tag: display[key], Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Tag < out[j].Tag
		}
		return out[i].Count > out[j].Count
	})
	return out, nil
}
