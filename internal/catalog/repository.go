package catalog

import (
	"context"

	"github.com/google/uuid"
)

// PostRepository abstracts catalog persistence so the service can run against
// the in-memory store or a bun-backed database.
type PostRepository interface {
	Upsert(ctx context.Context, record *Post) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, opts ListOptions) ([]*Post, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
