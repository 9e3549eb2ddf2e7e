// Package catalog maintains a queryable index of the post tree. Markdown
// files remain the source of truth; the catalog is a disposable projection
// that sync rebuilds from checksums, backed by memory or any bun database.
package catalog
