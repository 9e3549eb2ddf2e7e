package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes the catalog use cases: keep the table in step with the
// content tree and answer queries over it.
type Service interface {
	Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error)
	List(ctx context.Context, opts ListOptions) ([]*Post, int, error)
	Get(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	Tags(ctx context.Context) ([]TagCount, error)
}
