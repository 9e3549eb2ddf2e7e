package markdown

import (
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// PostRef captures the identity a post encodes in its file name: the slug
// stem and, when the name follows the YYYY-MM-DD-slug convention, the date
// prefix.
type PostRef struct {
	Slug    string
	Date    time.Time
	HasDate bool
	Ext     string
}

// ParseFileName splits a file name into its optional date prefix and slug
// stem. Paths are accepted; only the base name is inspected.
func ParseFileName(name string) PostRef {
	base := path.Base(filepath.ToSlash(name))
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	ref := PostRef{Slug: stem, Ext: ext}

	const prefixLen = len(time.DateOnly)
	if len(stem) > prefixLen+1 && stem[prefixLen] == '-' {
		if ts, err := time.Parse(time.DateOnly, stem[:prefixLen]); err == nil {
			ref.Date = ts
			ref.HasDate = true
			ref.Slug = stem[prefixLen+1:]
		}
	}

	return ref
}

// EffectiveSlug resolves the slug for a document: the frontmatter override
// when present, otherwise the file stem with any date prefix stripped. The
// result is normalized so lookups and duplicate detection compare like with
// like.
func EffectiveSlug(doc *interfaces.Document) string {
	if doc == nil {
		return ""
	}

	candidate := strings.TrimSpace(doc.FrontMatter.Slug)
	if candidate == "" {
		candidate = ParseFileName(doc.FilePath).Slug
	}
	if candidate == "" || candidate == "." {
		return ""
	}

	normalized, err := slug.Normalize(candidate)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(candidate))
	}
	return normalized
}

// EffectiveDate resolves the post timestamp: the frontmatter date when it
// parses, else the filename date prefix, else the zero time. The error is
// non-nil only when a frontmatter date exists and is malformed.
func EffectiveDate(doc *interfaces.Document) (time.Time, error) {
	if doc == nil {
		return time.Time{}, nil
	}

	ts, err := ParseDate(doc.FrontMatter.Date)
	if err == nil && !ts.IsZero() {
		return ts, nil
	}

	if ref := ParseFileName(doc.FilePath); ref.HasDate {
		return ref.Date, err
	}

	return time.Time{}, err
}
