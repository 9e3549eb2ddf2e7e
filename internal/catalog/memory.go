package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryPostRepository is an in-memory implementation for hosts that skip
// persistence and for tests.
type MemoryPostRepository struct {
	mu        sync.RWMutex
	posts     map[uuid.UUID]*Post
	slugIndex map[string]uuid.UUID
}

// NewMemoryPostRepository creates an empty in-memory post repository.
func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{
		posts:     make(map[uuid.UUID]*Post),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Upsert inserts or replaces the supplied post keyed by ID.
func (m *MemoryPostRepository) Upsert(_ context.Context, record *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePost(record)
	if existing, ok := m.posts[copied.ID]; ok && existing.Slug != copied.Slug {
		delete(m.slugIndex, existing.Slug)
	}
	m.posts[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return clonePost(copied), nil
}

// GetByID retrieves a post by identifier.
func (m *MemoryPostRepository) GetByID(_ context.Context, id uuid.UUID) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.posts[id]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: id.String()}
	}
	return clonePost(rec), nil
}

// GetBySlug retrieves a post by slug, returning NotFoundError when absent.
func (m *MemoryPostRepository) GetBySlug(_ context.Context, slug string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: slug}
	}
	return clonePost(m.posts[id]), nil
}

// List returns posts matching the supplied options plus the pre-pagination total.
func (m *MemoryPostRepository) List(_ context.Context, opts ListOptions) ([]*Post, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*Post, 0, len(m.posts))
	for _, rec := range m.posts {
		all = append(all, rec)
	}

	matched, total := applyListOptions(all, opts)
	out := make([]*Post, 0, len(matched))
	for _, rec := range matched {
		out = append(out, clonePost(rec))
	}
	return out, total, nil
}

// Delete removes a post, tolerating IDs that are already gone.
func (m *MemoryPostRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.posts[id]; ok {
		delete(m.slugIndex, existing.Slug)
		delete(m.posts, id)
	}
	return nil
}
