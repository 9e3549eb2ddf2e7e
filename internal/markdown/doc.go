// Package markdown turns post files into structured documents: frontmatter
// extraction, filename conventions, date handling, directory discovery, HTML
// rendering, and body inspection. Everything downstream (catalog, lint,
// export) consumes the documents this package produces.
package markdown
