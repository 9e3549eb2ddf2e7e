package exporter

import (
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-posts/internal/catalog"
)

func TestBuildFeedItems_Cap(t *testing.T) {
	links := testPermalinks(t)

	posts := make([]*catalog.Post, 0, maxFeedItems+20)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxFeedItems+20; i++ {
		posts = append(posts, &catalog.Post{
			Slug:  fmt.Sprintf("post-%03d", i),
			Title: fmt.Sprintf("Post %d", i),
			Date:  base.Add(time.Duration(i) * time.Hour),
		})
	}

	items, err := buildFeedItems(posts, links)
	if err != nil {
		t.Fatalf("buildFeedItems: %v", err)
	}
	if len(items) != maxFeedItems {
		t.Fatalf("items = %d, want cap %d", len(items), maxFeedItems)
	}
}

func TestBuildFeedItems_TitleFallback(t *testing.T) {
	links := testPermalinks(t)

	items, err := buildFeedItems([]*catalog.Post{
		{Slug: "untitled-note", Title: "  ", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}, links)
	if err != nil {
		t.Fatalf("buildFeedItems: %v", err)
	}
	if len(items) != 1 || items[0].Title != "untitled-note" {
		t.Fatalf("expected slug fallback title, got %#v", items)
	}
	if items[0].GUID != items[0].Link {
		t.Fatalf("guid should be the permalink: %#v", items[0])
	}
}
