package event

import (
	"strings"
	"time"

	"github.com/pfrederiksen/gram-events/internal/dates"
)

// Unspecified is the sentinel for an absent time or location.
const Unspecified = "unspecified"

// UntitledName is the fallback name when no title can be extracted.
const UntitledName = "Untitled Event"

// ISODate is the wire format for event dates. ISO dates sort lexically in
// chronological order, so slices of events can be ordered on the raw string.
const ISODate = "2006-01-02"

// Event is a structured event record extracted from a post caption.
type Event struct {
	Name      string   `json:"name"`
	Date      string   `json:"date"` // ISO "2006-01-02", always set
	Time      string   `json:"time"`
	Location  string   `json:"location"`
	Caption   string   `json:"caption"`
	Sources   []string `json:"sources"` // unique, insertion order, never empty
	DaysUntil int      `json:"days_until"`
	Permalink string   `json:"permalink,omitempty"`
}

// New creates an Event for a single source account. Empty time and location
// become the Unspecified sentinel; an empty name becomes UntitledName.
func New(name, date, timeOfDay, location, caption, source, permalink string) *Event {
	if name == "" {
		name = UntitledName
	}
	if timeOfDay == "" {
		timeOfDay = Unspecified
	}
	if location == "" {
		location = Unspecified
	}
	return &Event{
		Name:      name,
		Date:      date,
		Time:      timeOfDay,
		Location:  location,
		Caption:   caption,
		Sources:   []string{source},
		Permalink: permalink,
	}
}

// DateValue parses the event date. Returns the zero time if the date string
// is malformed, which only happens for hand-edited snapshots.
func (e *Event) DateValue() time.Time {
	t, err := time.Parse(ISODate, e.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Key returns the identity tuple used for duplicate detection: lowercased,
// trimmed name and location plus the date. The Unspecified sentinel is
// compared literally, so two records without a location can still collide.
func (e *Event) Key() string {
	return strings.ToLower(strings.TrimSpace(e.Name)) + "|" + e.Date + "|" + strings.ToLower(strings.TrimSpace(e.Location))
}

// HasSource reports whether account is already in the source set.
func (e *Event) HasSource(account string) bool {
	for _, s := range e.Sources {
		if s == account {
			return true
		}
	}
	return false
}

// withSource returns a copy of e with account folded into its source set.
// The copy leaves the original untouched for anything still holding it.
func (e *Event) withSource(account string) *Event {
	merged := *e
	merged.Sources = make([]string, len(e.Sources), len(e.Sources)+1)
	copy(merged.Sources, e.Sources)
	if !merged.HasSource(account) {
		merged.Sources = append(merged.Sources, account)
	}
	return &merged
}

// DaysUntilFrom computes the whole days between now and the event date.
// The value is advisory and recomputed at filter time, never frozen.
func (e *Event) DaysUntilFrom(now time.Time) int {
	d := e.DateValue()
	if d.IsZero() {
		return 0
	}
	return int(d.Sub(dates.Day(now)).Hours() / 24)
}

// IsUpcoming reports whether the event is on or after the reference day.
// The boundary is inclusive: events happening today count.
func (e *Event) IsUpcoming(now time.Time) bool {
	d := e.DateValue()
	if d.IsZero() {
		return false
	}
	return !d.Before(dates.Day(now))
}
