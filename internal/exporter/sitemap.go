package exporter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-posts/internal/catalog"
)

type sitemapEntry struct {
	Location string
	LastMod  time.Time
}

func buildSitemapEntries(posts []*catalog.Post, links *Permalinks) ([]sitemapEntry, error) {
	entries := make([]sitemapEntry, 0, len(posts))
	seen := map[string]struct{}{}
	for _, post := range posts {
		if post == nil {
			continue
		}
		location, err := links.Post(post.Slug)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[location]; ok {
			continue
		}
		seen[location] = struct{}{}
		entries = append(entries, sitemapEntry{
			Location: location,
			LastMod:  post.Date,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Location < entries[j].Location
	})
	return entries, nil
}

func buildSitemap(entries []sitemapEntry) string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range entries {
		builder.WriteString("  <url>\n")
		builder.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", escapeXML(entry.Location)))
		if !entry.LastMod.IsZero() {
			builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", entry.LastMod.UTC().Format(time.RFC3339)))
		}
		builder.WriteString("  </url>\n")
	}
	builder.WriteString(`</urlset>` + "\n")
	return builder.String()
}

func buildRobots(baseURL string) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("Sitemap: %s/sitemap.xml\n", normalizeBaseURL(baseURL)))
	return builder.String()
}
