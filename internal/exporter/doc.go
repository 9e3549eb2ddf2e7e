// Package exporter renders the post catalog into data artifacts an external
// site generator or indexer can consume: RSS and Atom feeds, a sitemap with
// robots.txt, and a JSON build manifest. Outputs land under one directory
// and every write is atomic.
package exporter
