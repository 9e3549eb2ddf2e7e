package catalog

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewPostModelRepository builds the generic bun repository for Post rows.
func NewPostModelRepository(db *bun.DB) repository.Repository[*Post] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Post]{
		NewRecord: func() *Post { return &Post{} },
		GetID: func(p *Post) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Post, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *Post) string {
			return p.Slug
		},
	})
}

// BunPostRepository persists catalog rows through bun with optional
// read-through caching.
type BunPostRepository struct {
	repo repository.Repository[*Post]
}

func NewBunPostRepository(db *bun.DB) *BunPostRepository {
	return NewBunPostRepositoryWithCache(db, nil, nil)
}

// NewBunPostRepositoryWithCache constructs a PostRepository backed by bun,
// wrapping reads in the supplied cache when both collaborators are present.
func NewBunPostRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPostRepository {
	base := NewPostModelRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunPostRepository{repo: wrapped}
}

func (r *BunPostRepository) Upsert(ctx context.Context, record *Post) (*Post, error) {
	stored, err := r.repo.Upsert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("post repository upsert %s: %w", record.Slug, err)
	}
	return stored, nil
}

func (r *BunPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "post", id.String())
	}
	return result, nil
}

func (r *BunPostRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "post", slug)
	}
	return result, nil
}

func (r *BunPostRepository) List(ctx context.Context, opts ListOptions) ([]*Post, int, error) {
	records, total, err := r.repo.List(ctx, listCriteria(opts)...)
	if err != nil {
		return nil, 0, fmt.Errorf("post repository list: %w", err)
	}
	return records, total, nil
}

func (r *BunPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Post{ID: id}); err != nil {
		return mapRepositoryError(err, "post", id.String())
	}
	return nil
}

// listCriteria translates ListOptions into select criteria. The tag filter
// relies on json_each, which the bundled sqlite driver provides; injected
// databases need an equivalent JSON array containment.
func listCriteria(opts ListOptions) []repository.SelectCriteria {
	var criteria []repository.SelectCriteria

	switch opts.Drafts {
	case DraftsExclude:
		criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.draft = ?", false)
		}))
	case DraftsOnly:
		criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.draft = ?", true)
		}))
	}

	if tag := strings.ToLower(strings.TrimSpace(opts.Tag)); tag != "" {
		criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("EXISTS (SELECT 1 FROM json_each(?TableAlias.tags) WHERE lower(json_each.value) = ?)", tag)
		}))
	}

	if !opts.Since.IsZero() {
		since := opts.Since
		criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.date >= ?", since)
		}))
	}
	if !opts.Until.IsZero() {
		until := opts.Until
		criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.date <= ?", until)
		}))
	}

	if match := strings.ToLower(strings.TrimSpace(opts.TitleMatch)); match != "" {
		criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("lower(?TableAlias.title) LIKE ?", "%"+match+"%")
		}))
	}

	criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		switch opts.Sort {
		case SortDateAsc:
			return q.OrderExpr("?TableAlias.date ASC, ?TableAlias.path ASC")
		case SortTitle:
			return q.OrderExpr("lower(?TableAlias.title) ASC")
		case SortPath:
			return q.OrderExpr("?TableAlias.path ASC")
		default:
			return q.OrderExpr("?TableAlias.date DESC, ?TableAlias.path ASC")
		}
	}))

	if opts.Limit > 0 || opts.Offset > 0 {
		criteria = append(criteria, repository.SelectPaginate(opts.Limit, opts.Offset))
	}

	return criteria
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
