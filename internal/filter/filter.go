// Package filter narrows the final event list for display.
//
// Filters are applied after merging and the future-only pass, so they only
// ever hide records, never change them. Criteria:
//   - Date ranges (from/to dates, parsed from "Mar 1-15" style input)
//   - Locations (substring matching, case-insensitive)
//   - Accounts (limit to events contributed by given source accounts)
//   - Weekends only (Saturday/Sunday events)
package filter

import (
	"strings"
	"time"

	"github.com/pfrederiksen/gram-events/internal/event"
)

// Filter represents display filtering criteria.
type Filter struct {
	// Date range filtering
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Location filtering (case-insensitive substring match)
	Locations []string `json:"locations,omitempty"`

	// Account filtering: keep events with at least one of these sources
	Accounts []string `json:"accounts,omitempty"`

	// Weekend-only filtering (Saturday/Sunday)
	WeekendsOnly bool `json:"weekends_only,omitempty"`
}

// New creates an empty filter that matches every event.
func New() *Filter {
	return &Filter{}
}

// IsEmpty reports whether no criteria are set.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil && f.DateTo == nil &&
		len(f.Locations) == 0 && len(f.Accounts) == 0 && !f.WeekendsOnly
}

// Apply returns the events matching every set criterion, preserving order.
func (f *Filter) Apply(events []*event.Event) []*event.Event {
	if f.IsEmpty() {
		return events
	}

	matched := make([]*event.Event, 0, len(events))
	for _, evt := range events {
		if f.matches(evt) {
			matched = append(matched, evt)
		}
	}
	return matched
}

func (f *Filter) matches(evt *event.Event) bool {
	date := evt.DateValue()

	if f.DateFrom != nil && date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && date.After(*f.DateTo) {
		return false
	}

	if f.WeekendsOnly {
		if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			return false
		}
	}

	if len(f.Locations) > 0 && !matchesSubstring(evt.Location, f.Locations) {
		return false
	}

	if len(f.Accounts) > 0 {
		found := false
		for _, account := range f.Accounts {
			if evt.HasSource(account) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func matchesSubstring(value string, terms []string) bool {
	lower := strings.ToLower(value)
	for _, term := range terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
