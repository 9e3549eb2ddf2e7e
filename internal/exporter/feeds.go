package exporter

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-posts/internal/catalog"
)

const maxFeedItems = 100

type feedItem struct {
	Title       string
	Summary     string
	Link        string
	GUID        string
	Tags        []string
	PublishedAt time.Time
}

// buildFeedItems maps published posts to feed items, newest first, capped at
// maxFeedItems. Input order is preserved, so callers pass posts already
// sorted by date descending.
func buildFeedItems(posts []*catalog.Post, links *Permalinks) ([]feedItem, error) {
	items := make([]feedItem, 0, len(posts))
	for _, post := range posts {
		if post == nil {
			continue
		}
		if len(items) == maxFeedItems {
			break
		}
		link, err := links.Post(post.Slug)
		if err != nil {
			return nil, err
		}
		items = append(items, feedItem{
			Title:       feedTitle(post),
			Summary:     normalizeWhitespace(post.Description),
			Link:        link,
			GUID:        link,
			Tags:        post.Tags,
			PublishedAt: post.Date,
		})
	}
	return items, nil
}

func buildRSSFeed(site siteMeta, items []feedItem, generatedAt time.Time) string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(site.Title)))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(site.BaseURL)))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(site.Description)))
	builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(time.RFC1123Z)))
	for _, item := range items {
		pub := item.PublishedAt
		if pub.IsZero() {
			pub = generatedAt
		}
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(item.Link)))
		builder.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", escapeXML(item.GUID)))
		builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", pub.UTC().Format(time.RFC1123Z)))
		if item.Summary != "" {
			builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(item.Summary)))
		}
		for _, tag := range item.Tags {
			builder.WriteString(fmt.Sprintf("      <category>%s</category>\n", escapeXML(tag)))
		}
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString(`</rss>` + "\n")
	return builder.String()
}

func buildAtomFeed(site siteMeta, items []feedItem, generatedAt time.Time) string {
	feedID := site.BaseURL + "/atom.xml"

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">` + "\n")
	builder.WriteString(fmt.Sprintf("  <id>%s</id>\n", escapeXML(feedID)))
	builder.WriteString(fmt.Sprintf("  <title>%s</title>\n", escapeXML(site.Title)))
	builder.WriteString(fmt.Sprintf("  <updated>%s</updated>\n", generatedAt.UTC().Format(time.RFC3339)))
	builder.WriteString(fmt.Sprintf(`  <link rel="alternate" href="%s" />`+"\n", escapeXMLAttr(site.BaseURL)))
	builder.WriteString(fmt.Sprintf(`  <link rel="self" href="%s" />`+"\n", escapeXMLAttr(feedID)))
	for _, item := range items {
		updated := item.PublishedAt
		if updated.IsZero() {
			updated = generatedAt
		}
		builder.WriteString("  <entry>\n")
		builder.WriteString(fmt.Sprintf("    <id>%s</id>\n", escapeXML(item.GUID)))
		builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf(`    <link href="%s" />`+"\n", escapeXMLAttr(item.Link)))
		builder.WriteString(fmt.Sprintf("    <updated>%s</updated>\n", updated.UTC().Format(time.RFC3339)))
		if !item.PublishedAt.IsZero() {
			builder.WriteString(fmt.Sprintf("    <published>%s</published>\n", item.PublishedAt.UTC().Format(time.RFC3339)))
		}
		if item.Summary != "" {
			builder.WriteString(fmt.Sprintf("    <summary>%s</summary>\n", escapeXML(item.Summary)))
		}
		for _, tag := range item.Tags {
			builder.WriteString(fmt.Sprintf(`    <category term="%s" />`+"\n", escapeXMLAttr(tag)))
		}
		builder.WriteString("  </entry>\n")
	}
	builder.WriteString(`</feed>` + "\n")
	return builder.String()
}

func feedTitle(post *catalog.Post) string {
	title := strings.TrimSpace(post.Title)
	if title == "" {
		title = post.Slug
	}
	return title
}

func normalizeWhitespace(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	return strings.Join(strings.Fields(input), " ")
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}

func escapeXMLAttr(value string) string {
	return html.EscapeString(value)
}
