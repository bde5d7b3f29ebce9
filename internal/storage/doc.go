// Package storage persists the extracted event list between runs.
//
// Two artifacts are written side by side in the data directory: events.json,
// an indented JSON snapshot with an updated_at stamp, and events.txt, a
// fixed-format text report consumed by the web layer. A snapshot older than
// the configured refresh interval is considered stale; a snapshot that fails
// to parse degrades to an empty event list rather than failing the run.
package storage
