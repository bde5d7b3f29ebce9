// Package cli implements the gram-events command line interface.
//
// The root command loads the configuration, re-runs the extraction pipeline
// when the persisted snapshot is stale (or --refresh forces it), applies any
// display filters, and writes the upcoming event list as text or JSON.
package cli
