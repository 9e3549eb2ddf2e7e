// Package lint checks a post tree for hygiene problems: missing titles,
// malformed or missing dates, duplicate slugs, and related conventions.
// Rules run concurrently per file and report into a single ordered Report,
// which renders as plain text or JSON.
package lint
