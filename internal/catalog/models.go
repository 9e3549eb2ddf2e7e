package catalog

import postscatalog "github.com/goliatone/go-posts/catalog"

type (
	Post        = postscatalog.Post
	DraftFilter = postscatalog.DraftFilter
	SortOrder   = postscatalog.SortOrder
)

func clonePost(src *Post) *Post {
	if src == nil {
		return nil
	}

	copied := *src
	if len(src.Tags) > 0 {
		copied.Tags = append([]string(nil), src.Tags...)
	}
	if len(src.Custom) > 0 {
		copied.Custom = make(map[string]any, len(src.Custom))
		for key, value := range src.Custom {
			copied.Custom[key] = value
		}
	}
	return &copied
}
