// Package pipeline drives per-account caption extraction and cross-account
// aggregation.
//
// Accounts are processed sequentially in configured order with a politeness
// delay between them. A fetch failure for one account is logged and costs
// that account its records, never the batch. Accumulated records are merged,
// filtered to upcoming dates, and sorted chronologically.
package pipeline
