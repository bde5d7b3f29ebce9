// Package event provides the structured record extracted from post captions
// and the merge logic that collapses records describing the same real-world
// event across source accounts.
//
// Record identity for merging is the tuple (normalized name, date, normalized
// location), except for records matched by a recurring-series signal, which
// merge on the signal alone. Merging folds source accounts into the
// first-seen record; every other field is frozen at its first-seen value.
package event
