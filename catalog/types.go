package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Post is one catalog row derived from a Markdown file. The files stay
// canonical; a row always carries the checksum of the source it was built
// from so sync runs can skip unchanged files and the whole table can be
// rebuilt at any time.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID          uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Slug        string         `bun:"slug,notnull,unique" json:"slug"`
	Title       string         `bun:"title,notnull" json:"title"`
	Description string         `bun:"description" json:"description,omitempty"`
	Date        time.Time      `bun:"date,nullzero" json:"date"`
	Draft       bool           `bun:"draft,notnull,default:false" json:"draft"`
	Tags        []string       `bun:"tags,type:jsonb" json:"tags,omitempty"`
	Path        string         `bun:"path,notnull" json:"path"`
	Checksum    string         `bun:"checksum,notnull" json:"checksum"`
	WordCount   int            `bun:"word_count,notnull,default:0" json:"word_count"`
	ReadingTime int            `bun:"reading_time,notnull,default:0" json:"reading_time"`
	Custom      map[string]any `bun:"custom,type:jsonb" json:"custom,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// DraftFilter controls how drafts appear in list results.
type DraftFilter int

const (
	// DraftsExclude hides drafts, matching what a published site would show.
	DraftsExclude DraftFilter = iota
	// DraftsInclude returns drafts alongside published posts.
	DraftsInclude
	// DraftsOnly returns nothing but drafts.
	DraftsOnly
)

// SortOrder names the supported list orderings.
type SortOrder string

const (
	SortDateDesc SortOrder = "date_desc"
	SortDateAsc  SortOrder = "date_asc"
	SortTitle    SortOrder = "title"
	SortPath     SortOrder = "path"
)

// ListOptions narrows and orders catalog queries.
type ListOptions struct {
	Tag        string
	Drafts     DraftFilter
	Since      time.Time
	Until      time.Time
	TitleMatch string
	Sort       SortOrder
	Limit      int
	Offset     int
}

// SyncOptions controls a catalog sync run.
type SyncOptions struct {
	// Dir overrides the content directory for this run; empty means the
	// service's configured base path.
	Dir string
	// Prune removes rows whose source files no longer exist.
	Prune bool
	// DryRun reports what would change without touching the repository.
	DryRun bool
}

// SyncResult summarises a sync run across the content tree.
type SyncResult struct {
	Created   int
	Updated   int
	Unchanged int
	Removed   int
	Failures  []SyncFailure
}

// SyncFailure records a file that could not be synced.
type SyncFailure struct {
	Path string
	Err  error
}

// TagCount pairs a tag with the number of posts carrying it. The ID is
// derived from the lowercased tag, so consumers can key on it across syncs.
type TagCount struct {
	ID    uuid.UUID `json:"id"`
	Tag   string    `json:"tag"`
	Count int       `json:"count"`
}
