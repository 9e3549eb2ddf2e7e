package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-posts/internal/catalog"
	"github.com/goliatone/go-posts/internal/identity"
	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/pkg/storage"
	"github.com/goliatone/go-posts/pkg/testsupport"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

func newBunTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	bunDB := storage.NewBunSQLite(sqlDB)
	if err := storage.EnsureSchema(context.Background(), bunDB, (*catalog.Post)(nil)); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return bunDB
}

func seedBunPosts(t *testing.T, repo catalog.PostRepository) {
	t.Helper()
	ctx := context.Background()

	posts := []*catalog.Post{
		{
			ID:       identity.PostUUID("redis-zero-to-hero"),
			Slug:     "redis-zero-to-hero",
			Title:    "Redis Zero to Hero",
			Date:     time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
			Tags:     []string{"redis", "databases"},
			Path:     "2024-03-14-redis-zero-to-hero.md",
			Checksum: "aaaa",
		},
		{
			ID:       identity.PostUUID("docker-networking"),
			Slug:     "docker-networking",
			Title:    "Docker Networking Explained",
			Date:     time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			Draft:    true,
			Tags:     []string{"docker", "networking"},
			Path:     "2024-05-02-docker-networking.md",
			Checksum: "bbbb",
		},
	}
	for _, post := range posts {
		if _, err := repo.Upsert(ctx, post); err != nil {
			t.Fatalf("seed %s: %v", post.Slug, err)
		}
	}
}

func TestBunPostRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	bunDB := newBunTestDB(t)

	repo := catalog.NewBunPostRepository(bunDB)
	seedBunPosts(t, repo)

	got, err := repo.GetBySlug(ctx, "redis-zero-to-hero")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.Title != "Redis Zero to Hero" {
		t.Fatalf("title = %q", got.Title)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "redis" {
		t.Fatalf("tags did not round-trip: %#v", got.Tags)
	}

	if _, err := repo.GetBySlug(ctx, "missing"); !catalog.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestBunPostRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	bunDB := newBunTestDB(t)

	repo := catalog.NewBunPostRepository(bunDB)
	seedBunPosts(t, repo)

	published, total, err := repo.List(ctx, catalog.ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(published) != 1 || published[0].Slug != "redis-zero-to-hero" {
		t.Fatalf("draft exclusion mismatch: total=%d %#v", total, published)
	}

	byTag, _, err := repo.List(ctx, catalog.ListOptions{Tag: "networking", Drafts: catalog.DraftsInclude})
	if err != nil {
		t.Fatalf("List by tag: %v", err)
	}
	if len(byTag) != 1 || byTag[0].Slug != "docker-networking" {
		t.Fatalf("tag filter mismatch: %#v", byTag)
	}

	ordered, _, err := repo.List(ctx, catalog.ListOptions{Drafts: catalog.DraftsInclude, Sort: catalog.SortDateAsc})
	if err != nil {
		t.Fatalf("List ordered: %v", err)
	}
	if len(ordered) != 2 || ordered[0].Slug != "redis-zero-to-hero" {
		t.Fatalf("order mismatch: %#v", ordered)
	}
}

func TestBunPostRepository_UpsertRefreshesRow(t *testing.T) {
	ctx := context.Background()
	bunDB := newBunTestDB(t)

	repo := catalog.NewBunPostRepository(bunDB)
	seedBunPosts(t, repo)

	edited := &catalog.Post{
		ID:       identity.PostUUID("redis-zero-to-hero"),
		Slug:     "redis-zero-to-hero",
		Title:    "Redis Zero to Hero, Second Edition",
		Date:     time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		Tags:     []string{"redis"},
		Path:     "2024-03-14-redis-zero-to-hero.md",
		Checksum: "cccc",
	}
	if _, err := repo.Upsert(ctx, edited); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.GetBySlug(ctx, "redis-zero-to-hero")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.Title != "Redis Zero to Hero, Second Edition" || got.Checksum != "cccc" {
		t.Fatalf("row not refreshed: %#v", got)
	}

	_, total, err := repo.List(ctx, catalog.ListOptions{Drafts: catalog.DraftsInclude})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Fatalf("upsert must not duplicate rows, total=%d", total)
	}
}

func TestCatalogService_WithBunStorageAndCache(t *testing.T) {
	ctx := context.Background()
	bunDB := newBunTestDB(t)

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	repo := catalog.NewBunPostRepositoryWithCache(bunDB, cacheService, keySerializer)

	dir := t.TempDir()
	writeIntegrationPost(t, dir)

	posts, err := markdown.NewService(markdown.Config{BasePath: dir, Recursive: true}, nil, nil)
	if err != nil {
		t.Fatalf("markdown service: %v", err)
	}
	svc, err := catalog.NewService(posts, repo)
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}

	result, err := svc.Sync(ctx, catalog.SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("sync = %+v", result)
	}

	if _, err := svc.GetBySlug(ctx, "redis-zero-to-hero"); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if _, err := svc.GetBySlug(ctx, "redis-zero-to-hero"); err != nil {
		t.Fatalf("cached get: %v", err)
	}
}

func writeIntegrationPost(t *testing.T, dir string) {
	t.Helper()
	content := `---
title: "Redis Zero to Hero"
date: 2024-03-14
tags: [redis]
---

Strings, hashes, streams.
`
	path := filepath.Join(dir, "2024-03-14-redis-zero-to-hero.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}
