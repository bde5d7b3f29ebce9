package event

import (
	"reflect"
	"testing"
	"time"
)

func TestDedupeIdentityKey(t *testing.T) {
	a := New("Trivia Night", "2025-05-01", "20:00", "The Lounge", "trivia night, 8pm", "bar_a", "https://example.com/p/1/")
	b := New("Trivia Night", "2025-05-01", "21:00", "the lounge", "different caption", "bar_b", "https://example.com/p/2/")
	c := New("Open Mic", "2025-05-01", "", "The Lounge", "open mic", "bar_a", "")

	got := Dedupe([]*Event{a, b, c})

	if len(got) != 2 {
		t.Fatalf("Dedupe returned %d records, want 2", len(got))
	}

	merged := got[0]
	if !reflect.DeepEqual(merged.Sources, []string{"bar_a", "bar_b"}) {
		t.Errorf("Sources = %v, want [bar_a bar_b]", merged.Sources)
	}
	// First-seen fields are frozen.
	if merged.Time != "20:00" || merged.Caption != "trivia night, 8pm" || merged.Permalink != "https://example.com/p/1/" {
		t.Errorf("merged record lost first-seen fields: %+v", merged)
	}
	if got[1].Name != "Open Mic" {
		t.Errorf("second record = %q, want Open Mic", got[1].Name)
	}
}

func TestDedupeRecurringSignal(t *testing.T) {
	// Same weekly series, announced with different dates and venues.
	a := New("Karaoke Night", "2025-05-07", "21:00", "Moe's", "karaoke every wednesday!", "bar_a", "")
	b := New("Wednesday Karaoke", "2025-05-14", "", "The Dive", "come sing", "bar_b", "")
	c := New("Wednesday Karaoke", "2025-05-14", "", "The Dive", "come sing", "bar_b", "")

	got := Dedupe([]*Event{a, b, c})

	if len(got) != 1 {
		t.Fatalf("Dedupe returned %d records, want 1", len(got))
	}
	canonical := got[0]
	if canonical.Name != "Karaoke Night" || canonical.Date != "2025-05-07" || canonical.Location != "Moe's" {
		t.Errorf("canonical record is not the first-seen instance: %+v", canonical)
	}
	if !reflect.DeepEqual(canonical.Sources, []string{"bar_a", "bar_b"}) {
		t.Errorf("Sources = %v, want [bar_a bar_b] without duplicates", canonical.Sources)
	}
}

func TestDedupeSignalChecksNameAndCaption(t *testing.T) {
	// Signal terms split across name and caption still count.
	a := New("Karaoke Blowout", "2025-05-07", "", "", "see you wednesday", "bar_a", "")
	// Caption mentions karaoke but never wednesday: not part of the series.
	b := New("One-Off Karaoke", "2025-05-09", "", "", "special karaoke friday", "bar_b", "")

	got := Dedupe([]*Event{a, b})
	if len(got) != 2 {
		t.Fatalf("Dedupe returned %d records, want 2", len(got))
	}
}

func TestDedupePreservesFirstSeenOrder(t *testing.T) {
	a := New("A", "2025-05-03", "", "", "party", "x", "")
	b := New("B", "2025-05-02", "", "", "party", "y", "")
	dupA := New("A", "2025-05-03", "", "", "party again", "z", "")

	got := Dedupe([]*Event{a, b, dupA})

	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "B" {
		t.Fatalf("Dedupe order = %v, want [A B]", names(got))
	}
}

func TestFilterUpcoming(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	past := New("Past", "2025-04-30", "", "", "", "a", "")
	today := New("Today", "2025-05-01", "", "", "", "a", "")
	future := New("Future", "2025-05-11", "", "", "", "a", "")

	got := FilterUpcoming([]*Event{past, today, future}, now)

	if want := []string{"Today", "Future"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("FilterUpcoming = %v, want %v", names(got), want)
	}
	if got[0].DaysUntil != 0 {
		t.Errorf("today's DaysUntil = %d, want 0", got[0].DaysUntil)
	}
	if got[1].DaysUntil != 10 {
		t.Errorf("future DaysUntil = %d, want 10", got[1].DaysUntil)
	}
}

func TestSortByDateStable(t *testing.T) {
	a := New("A", "2025-05-03", "", "", "", "x", "")
	b := New("B", "2025-05-02", "", "", "", "x", "")
	c := New("C", "2025-05-03", "", "a different place", "", "x", "")

	records := []*Event{a, b, c}
	SortByDate(records)

	if want := []string{"B", "A", "C"}; !reflect.DeepEqual(names(records), want) {
		t.Errorf("SortByDate = %v, want %v", names(records), want)
	}
}

func names(records []*Event) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}
