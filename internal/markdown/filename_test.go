package markdown

import (
	"testing"
	"time"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

func TestParseFileName(t *testing.T) {
	ref := ParseFileName("content/posts/2024-03-14-redis-zero-to-hero.md")

	if !ref.HasDate {
		t.Fatalf("expected date prefix to be recognized")
	}
	want := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	if !ref.Date.Equal(want) {
		t.Fatalf("date prefix = %v, want %v", ref.Date, want)
	}
	if ref.Slug != "redis-zero-to-hero" {
		t.Fatalf("slug = %q, want redis-zero-to-hero", ref.Slug)
	}
	if ref.Ext != ".md" {
		t.Fatalf("ext = %q, want .md", ref.Ext)
	}
}

func TestParseFileName_NoPrefix(t *testing.T) {
	ref := ParseFileName("about.md")

	if ref.HasDate {
		t.Fatalf("expected no date prefix")
	}
	if ref.Slug != "about" {
		t.Fatalf("slug = %q, want about", ref.Slug)
	}
}

func TestParseFileName_BadPrefix(t *testing.T) {
	// Looks date-shaped but is not a valid calendar day.
	ref := ParseFileName("2024-13-99-not-a-date.md")

	if ref.HasDate {
		t.Fatalf("expected invalid prefix to be treated as slug text")
	}
	if ref.Slug != "2024-13-99-not-a-date" {
		t.Fatalf("slug = %q", ref.Slug)
	}
}

func TestEffectiveSlug(t *testing.T) {
	doc := &interfaces.Document{
		FilePath: "posts/2024-03-14-redis-zero-to-hero.md",
	}
	if got := EffectiveSlug(doc); got != "redis-zero-to-hero" {
		t.Fatalf("EffectiveSlug from filename = %q", got)
	}

	doc.FrontMatter.Slug = "Redis Explained"
	if got := EffectiveSlug(doc); got != "redis-explained" {
		t.Fatalf("EffectiveSlug override = %q", got)
	}
}

func TestEffectiveDate(t *testing.T) {
	doc := &interfaces.Document{
		FilePath: "posts/2024-03-14-redis-zero-to-hero.md",
	}

	// No frontmatter date: filename prefix wins.
	got, err := EffectiveDate(doc)
	if err != nil {
		t.Fatalf("EffectiveDate: %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("EffectiveDate from filename = %v", got)
	}

	// Frontmatter date takes precedence over the prefix.
	doc.FrontMatter.Date = "2024-04-01T10:00:00Z"
	got, err = EffectiveDate(doc)
	if err != nil {
		t.Fatalf("EffectiveDate: %v", err)
	}
	if !got.Equal(time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("EffectiveDate from frontmatter = %v", got)
	}

	// Malformed frontmatter date reports the error but still falls back.
	doc.FrontMatter.Date = "not-a-date"
	got, err = EffectiveDate(doc)
	if err == nil {
		t.Fatalf("expected malformed date error")
	}
	if !got.Equal(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected filename fallback, got %v", got)
	}
}
