package exporter

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-posts/internal/catalog"
)

const manifestVersion = 1

// Manifest is the machine-readable build record external tooling consumes.
// Field order is fixed so diffs between builds stay readable.
type Manifest struct {
	Version     int            `json:"version"`
	GeneratedAt time.Time      `json:"generated_at"`
	BaseURL     string         `json:"base_url"`
	Posts       []ManifestPost `json:"posts"`
	Tags        []ManifestTag  `json:"tags"`
}

// ManifestPost is one post entry in the manifest.
type ManifestPost struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Draft       bool      `json:"draft,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Permalink   string    `json:"permalink"`
	Path        string    `json:"path"`
	Checksum    string    `json:"checksum,omitempty"`
	WordCount   int       `json:"word_count"`
	ReadingTime int       `json:"reading_time"`
}

// ManifestTag is one entry of the manifest tag index.
type ManifestTag struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Permalink string `json:"permalink"`
}

// buildManifest assembles the manifest from posts already sorted newest
// first. The tag index is alphabetical and counts only the posts present.
func buildManifest(posts []*catalog.Post, links *Permalinks, generatedAt time.Time) (*Manifest, error) {
	manifest := &Manifest{
		Version:     manifestVersion,
		GeneratedAt: generatedAt.UTC(),
		BaseURL:     links.Base(),
		Posts:       make([]ManifestPost, 0, len(posts)),
	}

	tagCounts := map[string]int{}
	tagNames := map[string]string{}

	for _, post := range posts {
		if post == nil {
			continue
		}
		permalink, err := links.Post(post.Slug)
		if err != nil {
			return nil, err
		}
		manifest.Posts = append(manifest.Posts, ManifestPost{
			Slug:        post.Slug,
			Title:       post.Title,
			Description: post.Description,
			Date:        post.Date.UTC(),
			Draft:       post.Draft,
			Tags:        post.Tags,
			Permalink:   permalink,
			Path:        post.Path,
			Checksum:    post.Checksum,
			WordCount:   post.WordCount,
			ReadingTime: post.ReadingTime,
		})
		for _, tag := range post.Tags {
			key := strings.ToLower(strings.TrimSpace(tag))
			if key == "" {
				continue
			}
			if _, ok := tagNames[key]; !ok {
				tagNames[key] = strings.TrimSpace(tag)
			}
			tagCounts[key]++
		}
	}

	keys := make([]string, 0, len(tagCounts))
	for key := range tagCounts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	manifest.Tags = make([]ManifestTag, 0, len(keys))
	for _, key := range keys {
		permalink, err := links.Tag(key)
		if err != nil {
			return nil, err
		}
		manifest.Tags = append(manifest.Tags, ManifestTag{
			Name:      tagNames[key],
			Count:     tagCounts[key],
			Permalink: permalink,
		})
	}

	return manifest, nil
}

func (m *Manifest) marshal() ([]byte, error) {
	if m.Posts == nil {
		m.Posts = []ManifestPost{}
	}
	if m.Tags == nil {
		m.Tags = []ManifestTag{}
	}
	return json.MarshalIndent(m, "", "  ")
}
