package catalog

import (
	"sort"
	"strings"
)

// applyListOptions filters, orders, and paginates posts in memory. The memory
// repository uses it directly; the bun repository mirrors the same semantics
// in SQL, so list behaviour stays identical across backends.
func applyListOptions(posts []*Post, opts ListOptions) ([]*Post, int) {
	filtered := make([]*Post, 0, len(posts))
	for _, post := range posts {
		if matchesListOptions(post, opts) {
			filtered = append(filtered, post)
		}
	}

	sortPosts(filtered, opts.Sort)
	total := len(filtered)

	if opts.Offset > 0 {
		if opts.Offset >= len(filtered) {
			return nil, total
		}
		filtered = filtered[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(filtered) {
		filtered = filtered[:opts.Limit]
	}

	return filtered, total
}

func matchesListOptions(post *Post, opts ListOptions) bool {
	if post == nil {
		return false
	}

	switch opts.Drafts {
	case DraftsExclude:
		if post.Draft {
			return false
		}
	case DraftsOnly:
		if !post.Draft {
			return false
		}
	}

	if opts.Tag != "" && !hasTag(post, opts.Tag) {
		return false
	}

	if !opts.Since.IsZero() && post.Date.Before(opts.Since) {
		return false
	}
	if !opts.Until.IsZero() && post.Date.After(opts.Until) {
		return false
	}

	if opts.TitleMatch != "" {
		if !strings.Contains(strings.ToLower(post.Title), strings.ToLower(opts.TitleMatch)) {
			return false
		}
	}

	return true
}

func hasTag(post *Post, tag string) bool {
	want := strings.ToLower(strings.TrimSpace(tag))
	for _, candidate := range post.Tags {
		if strings.ToLower(strings.TrimSpace(candidate)) == want {
			return true
		}
	}
	return false
}

func sortPosts(posts []*Post, order SortOrder) {
	switch order {
	case SortDateAsc:
		sort.SliceStable(posts, func(i, j int) bool {
			if posts[i].Date.Equal(posts[j].Date) {
				return posts[i].Path < posts[j].Path
			}
			return posts[i].Date.Before(posts[j].Date)
		})
	case SortTitle:
		sort.SliceStable(posts, func(i, j int) bool {
			return strings.ToLower(posts[i].Title) < strings.ToLower(posts[j].Title)
		})
	case SortPath:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Path < posts[j].Path
		})
	default: // SortDateDesc
		sort.SliceStable(posts, func(i, j int) bool {
			if posts[i].Date.Equal(posts[j].Date) {
				return posts[i].Path < posts[j].Path
			}
			return posts[i].Date.After(posts[j].Date)
		})
	}
}
