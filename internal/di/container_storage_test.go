package di

import (
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-posts/internal/catalog"
	"github.com/goliatone/go-posts/internal/runtimeconfig"
	"github.com/goliatone/go-posts/pkg/storage"
)

func storageTestConfig(t *testing.T) runtimeconfig.Config {
	t.Helper()

	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = t.TempDir()
	cfg.Export.OutputDir = t.TempDir()
	return cfg
}

func TestContainer_MemoryProviderSkipsDatabase(t *testing.T) {
	cfg := storageTestConfig(t)

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { container.Close() })

	if container.bunDB != nil {
		t.Fatal("memory provider must not open a database")
	}
	if _, ok := container.postRepo.(*catalog.MemoryPostRepository); !ok {
		t.Fatalf("expected memory repository, got %T", container.postRepo)
	}
}

func TestContainer_SQLiteProviderOpensOwnedDatabase(t *testing.T) {
	cfg := storageTestConfig(t)
	cfg.Features.Persistence = true
	cfg.Storage.Provider = "sqlite"
	cfg.Storage.DSN = fmt.Sprintf("file:di_storage_owned_%d?mode=memory&cache=shared", time.Now().UnixNano())

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.bunDB == nil {
		t.Fatal("expected bunDB to be initialized")
	}
	if !container.ownedDB {
		t.Fatal("container should own connections it opened")
	}
	if _, ok := container.postRepo.(*catalog.BunPostRepository); !ok {
		t.Fatalf("expected bun repository, got %T", container.postRepo)
	}

	if err := container.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if container.bunDB != nil || container.ownedDB {
		t.Fatal("Close should release the owned database")
	}
}

func TestContainer_InjectedDatabaseIsNotClosed(t *testing.T) {
	cfg := storageTestConfig(t)

	db, err := storage.OpenBun(fmt.Sprintf("file:di_storage_injected_%d?mode=memory&cache=shared", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("open bun db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	container, err := NewContainer(cfg, WithBunDB(db))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.ownedDB {
		t.Fatal("injected connections must not be owned")
	}
	if err := container.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if container.bunDB != db {
		t.Fatal("Close must leave injected connections alone")
	}
}

func TestContainer_CacheDefaultsFollowConfig(t *testing.T) {
	cfg := storageTestConfig(t)
	cfg.Cache.Enabled = true
	cfg.Cache.TTL = "45s"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { container.Close() })

	if container.cacheService == nil || container.keySerializer == nil {
		t.Fatal("expected cache service and key serializer")
	}
	if container.cacheTTL != 45*time.Second {
		t.Fatalf("expected 45s cache TTL, got %s", container.cacheTTL)
	}

	cfg.Cache.Enabled = false
	disabled, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { disabled.Close() })

	if disabled.cacheService != nil {
		t.Fatal("cache service should not be built when caching is disabled")
	}
}
