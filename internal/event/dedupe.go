package event

import (
	"sort"
	"strings"
	"time"
)

// Signal marks a class of posts that describe one recurring event series and
// must merge regardless of the per-post date, time, or location.
type Signal struct {
	Name  string
	Match func(e *Event) bool
}

// recurringSignals is the fixed list of known recurring-series classes.
// Currently a single observed pattern: weekly karaoke nights announced every
// Wednesday by several venue accounts.
var recurringSignals = []Signal{
	{
		Name: "karaoke-wednesday",
		Match: func(e *Event) bool {
			text := strings.ToLower(e.Name + " " + e.Caption)
			return strings.Contains(text, "karaoke") && strings.Contains(text, "wednesday")
		},
	},
}

// matchSignal returns the first recurring-series signal matching e, if any.
func matchSignal(e *Event) (Signal, bool) {
	for _, sig := range recurringSignals {
		if sig.Match(e) {
			return sig, true
		}
	}
	return Signal{}, false
}

// Dedupe collapses records that denote the same real-world event, in input
// order. The first-seen record of each duplicate group survives with the
// later records' source accounts folded in; its other fields are never
// overwritten. Surviving records keep first-seen order.
func Dedupe(records []*Event) []*Event {
	result := make([]*Event, 0, len(records))
	byKey := make(map[string]int, len(records))
	bySignal := make(map[string]int)

	for _, rec := range records {
		if sig, ok := matchSignal(rec); ok {
			if i, seen := bySignal[sig.Name]; seen {
				result[i] = foldSources(result[i], rec.Sources)
				continue
			}
			bySignal[sig.Name] = len(result)
			byKey[rec.Key()] = len(result)
			result = append(result, rec)
			continue
		}

		key := rec.Key()
		if i, seen := byKey[key]; seen {
			result[i] = foldSources(result[i], rec.Sources)
			continue
		}
		byKey[key] = len(result)
		result = append(result, rec)
	}

	return result
}

// foldSources returns a copy of canonical with each account added to its
// source set, preserving uniqueness and insertion order.
func foldSources(canonical *Event, accounts []string) *Event {
	merged := canonical
	for _, account := range accounts {
		merged = merged.withSource(account)
	}
	return merged
}

// FilterUpcoming drops records dated strictly before the reference day and
// recomputes DaysUntil on the survivors. Input order is preserved.
func FilterUpcoming(records []*Event, now time.Time) []*Event {
	upcoming := make([]*Event, 0, len(records))
	for _, rec := range records {
		if !rec.IsUpcoming(now) {
			continue
		}
		kept := *rec
		kept.DaysUntil = rec.DaysUntilFrom(now)
		upcoming = append(upcoming, &kept)
	}
	return upcoming
}

// SortByDate orders records ascending by date. The sort is stable: records
// on the same day keep the order their canonical instance was first seen.
func SortByDate(records []*Event) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})
}
