package markdown

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "Redis Zero to Hero" {
		t.Fatalf("FrontMatter Title mismatch, got %q", fm.Title)
	}
	if fm.Slug != "redis-zero-to-hero" {
		t.Fatalf("FrontMatter Slug mismatch, got %q", fm.Slug)
	}
	if fm.Date != "2024-03-14T09:30:00Z" {
		t.Fatalf("FrontMatter Date should stay raw, got %q", fm.Date)
	}
	if fm.Draft {
		t.Fatalf("FrontMatter Draft should be false")
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "redis" {
		t.Fatalf("FrontMatter Tags mismatch: %#v", fm.Tags)
	}
	if fm.Custom["series"] != "zero-to-hero" {
		t.Fatalf("FrontMatter Custom series missing: %#v", fm.Custom)
	}
	if fm.Custom["featured"] != true {
		t.Fatalf("FrontMatter Custom featured missing: %#v", fm.Custom)
	}
	if fm.Raw["description"] != "From SET to streams without the detours" {
		t.Fatalf("FrontMatter Raw description missing: %#v", fm.Raw)
	}
	if fm.Raw["draft"] != false {
		t.Fatalf("FrontMatter Raw draft missing: %#v", fm.Raw)
	}
	if _, ok := fm.Custom["title"]; ok {
		t.Fatalf("reserved keys must not leak into Custom: %#v", fm.Custom)
	}
	if len(body) == 0 || !strings.Contains(string(body), "# Redis Zero to Hero") {
		t.Fatalf("Markdown body not returned correctly: %q", string(body))
	}
}

func TestParseFrontMatter_NoBlock(t *testing.T) {
	source := []byte("Just a paragraph with no metadata at all.\n")

	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "" || fm.Date != "" || len(fm.Tags) != 0 {
		t.Fatalf("expected zero-value frontmatter, got %#v", fm)
	}
	if string(body) != string(source) {
		t.Fatalf("expected body to be the whole input, got %q", string(body))
	}
}

func TestParseFrontMatter_MalformedYAML(t *testing.T) {
	source := []byte("---\ntitle: [unclosed\n---\n\nbody\n")

	if _, _, err := ParseFrontMatter(source); err == nil {
		t.Fatalf("expected malformed frontmatter to error")
	}
}

func TestBuildDocument(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")
	modified := time.Now().UTC()

	doc, err := BuildDocument("testdata/basic.md", data, modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	if doc.FilePath != "testdata/basic.md" {
		t.Fatalf("expected FilePath to be set, got %q", doc.FilePath)
	}
	if doc.Size != int64(len(data)) {
		t.Fatalf("expected Size %d, got %d", len(data), doc.Size)
	}
	if doc.LastModified != modified {
		t.Fatalf("expected LastModified to equal the provided timestamp")
	}
	if len(doc.Body) == 0 {
		t.Fatalf("expected Body to contain markdown content")
	}
	if len(doc.BodyHTML) != 0 {
		t.Fatalf("expected BodyHTML to stay empty until rendered")
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
