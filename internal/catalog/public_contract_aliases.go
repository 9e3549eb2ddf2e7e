package catalog

import postscatalog "github.com/goliatone/go-posts/catalog"

type (
	Service       = postscatalog.Service
	ListOptions   = postscatalog.ListOptions
	SyncOptions   = postscatalog.SyncOptions
	SyncResult    = postscatalog.SyncResult
	SyncFailure   = postscatalog.SyncFailure
	TagCount      = postscatalog.TagCount
	NotFoundError = postscatalog.NotFoundError
)

const (
	DraftsExclude = postscatalog.DraftsExclude
	DraftsInclude = postscatalog.DraftsInclude
	DraftsOnly    = postscatalog.DraftsOnly

	SortDateDesc = postscatalog.SortDateDesc
	SortDateAsc  = postscatalog.SortDateAsc
	SortTitle    = postscatalog.SortTitle
	SortPath     = postscatalog.SortPath
)

var IsNotFound = postscatalog.IsNotFound
