// Package watch reacts to edits in a content tree. It wraps fsnotify with
// recursive directory tracking, Markdown extension filtering, and debounced
// change batches, so callers re-sync once per editing burst instead of once
// per write syscall.
package watch
