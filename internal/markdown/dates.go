package markdown

import (
	"fmt"
	"strings"
	"time"
)

// postDateLayouts enumerates the timestamp layouts accepted in post
// frontmatter. The set matches what static-site generators tolerate for the
// `date` field; anything outside it is treated as malformed.
var postDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseDate parses a frontmatter date value. Empty input returns the zero
// time without error so callers can distinguish an absent date from a
// malformed one.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, nil
	}

	for _, layout := range postDateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("markdown: unrecognized date %q", raw)
}
