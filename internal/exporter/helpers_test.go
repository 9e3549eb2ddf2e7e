package exporter

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-posts/internal/catalog"
	"github.com/goliatone/go-posts/internal/identity"
)

var exportGeneratedAt = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

// fixturePosts is newest first, with the draft in the middle, matching how
// the catalog lists posts.
func fixturePosts() []*catalog.Post {
	return []*catalog.Post{
		{
			ID:          identity.PostUUID("terraform-state"),
			Slug:        "terraform-state",
			Title:       "Terraform State, Loved & Lost",
			Description: "Locking, drift & the S3 backend",
			Date:        time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
			Tags:        []string{"terraform", "infra"},
			Path:        "posts/2024-06-01-terraform-state.md",
			Checksum:    "1111aaaa",
			WordCount:   180,
			ReadingTime: 1,
		},
		{
			ID:          identity.PostUUID("docker-networking"),
			Slug:        "docker-networking",
			Title:       "Docker Networking Explained",
			Date:        time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
			Draft:       true,
			Tags:        []string{"docker"},
			Path:        "posts/2024-05-02-docker-networking.md",
			Checksum:    "3333cccc",
			WordCount:   260,
			ReadingTime: 2,
		},
		{
			ID:          identity.PostUUID("redis-zero-to-hero"),
			Slug:        "redis-zero-to-hero",
			Title:       "Redis Zero to Hero",
			Description: "Strings to streams",
			Date:        time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC),
			Tags:        []string{"redis", "databases"},
			Path:        "posts/2024-03-14-redis-zero-to-hero.md",
			Checksum:    "2222bbbb",
			WordCount:   420,
			ReadingTime: 3,
		},
	}
}

func publishedFixture() []*catalog.Post {
	published := []*catalog.Post{}
	for _, post := range fixturePosts() {
		if !post.Draft {
			published = append(published, post)
		}
	}
	return published
}

type stubSource struct {
	posts []*catalog.Post
}

func (s stubSource) List(_ context.Context, opts catalog.ListOptions) ([]*catalog.Post, int, error) {
	out := []*catalog.Post{}
	for _, post := range s.posts {
		if post.Draft && opts.Drafts != catalog.DraftsInclude {
			continue
		}
		out = append(out, post)
	}
	return out, len(out), nil
}

type memoryWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{files: map[string][]byte{}}
}

func (w *memoryWriter) EnsureDir(context.Context, string) error { return nil }

func (w *memoryWriter) WriteFile(_ context.Context, req WriteRequest) error {
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[req.Path] = data
	return nil
}

func (w *memoryWriter) file(name string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[name]
	return data, ok
}

func testPermalinks(tb testing.TB) *Permalinks {
	tb.Helper()
	links, err := NewPermalinks("https://blog.example.com")
	if err != nil {
		tb.Fatalf("NewPermalinks: %v", err)
	}
	return links
}

func newTestService(tb testing.TB, writer ArtifactWriter) *Service {
	tb.Helper()
	svc, err := New(Config{
		BaseURL:         "https://blog.example.com",
		OutputDir:       "public",
		SiteTitle:       "Example Engineering",
		SiteDescription: "Notes from the example team",
		Workers:         2,
	}, stubSource{posts: fixturePosts()},
		WithWriter(writer),
		WithClock(func() time.Time { return exportGeneratedAt }),
	)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}
	return svc
}
