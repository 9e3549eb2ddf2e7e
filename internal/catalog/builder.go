package catalog

import (
	"encoding/hex"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/goliatone/go-posts/internal/identity"
	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// ErrSlugMissing reports a document whose slug could not be derived from
// either frontmatter or file name.
var ErrSlugMissing = errors.New("catalog: post slug could not be derived")

// PostFromDocument derives a catalog row from a loaded document: stable
// identity, effective slug and date, frontmatter fields, and body stats.
// Malformed frontmatter dates do not fail the build; the row falls back to
// the filename prefix or the zero time and hygiene checks report the issue.
func PostFromDocument(doc *interfaces.Document, now time.Time) (*Post, error) {
	slug := markdown.EffectiveSlug(doc)
	if slug == "" {
		return nil, ErrSlugMissing
	}

	date, _ := markdown.EffectiveDate(doc)
	stats := markdown.Inspect(doc.Body)

	title := strings.TrimSpace(doc.FrontMatter.Title)
	if title == "" {
		title = titleFromSlug(slug)
	}

	tags := make([]string, 0, len(doc.FrontMatter.Tags))
	for _, tag := range doc.FrontMatter.Tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	return &Post{
		ID:          identity.PostUUID(slug),
		Slug:        slug,
		Title:       title,
		Description: strings.TrimSpace(doc.FrontMatter.Description),
		Date:        date,
		Draft:       doc.FrontMatter.Draft,
		Tags:        tags,
		Path:        doc.FilePath,
		Checksum:    hex.EncodeToString(doc.Checksum),
		WordCount:   stats.WordCount,
		ReadingTime: stats.ReadingTime,
		Custom:      doc.FrontMatter.Custom,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// titleFromSlug produces a human-readable fallback title when frontmatter has
// none, so "redis-zero-to-hero" lists as "Redis Zero To Hero".
func titleFromSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, word := range words {
		runes := []rune(word)
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
