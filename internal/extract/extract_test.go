package extract

import (
	"testing"
	"time"

	"github.com/pfrederiksen/gram-events/internal/event"
)

func TestExtract(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) // a Thursday

	t.Run("full announcement", func(t *testing.T) {
		caption := "Neon Nights Party\nJoin us for a night to remember at The Lounge, 15/3/2026 doors at 9pm"

		rec := Extract(caption, "venueco", "https://www.instagram.com/p/abc123/", now)
		if rec == nil {
			t.Fatal("Extract returned nil, want a record")
		}
		if rec.Name != "Neon Nights" {
			t.Errorf("Name = %q, want %q", rec.Name, "Neon Nights")
		}
		if rec.Date != "2026-03-15" {
			t.Errorf("Date = %q, want %q", rec.Date, "2026-03-15")
		}
		if rec.Time != "21:00" {
			t.Errorf("Time = %q, want %q", rec.Time, "21:00")
		}
		if rec.Location != "The Lounge" {
			t.Errorf("Location = %q, want %q", rec.Location, "The Lounge")
		}
		if len(rec.Sources) != 1 || rec.Sources[0] != "venueco" {
			t.Errorf("Sources = %v, want [venueco]", rec.Sources)
		}
		if rec.Permalink != "https://www.instagram.com/p/abc123/" {
			t.Errorf("Permalink = %q", rec.Permalink)
		}
		if rec.Caption != caption {
			t.Error("Caption should retain the original text")
		}
	})

	t.Run("first line name fallback and sentinels", func(t *testing.T) {
		rec := Extract("friday brunch, 11am\nsee menu below", "cafeco", "", now)
		if rec == nil {
			t.Fatal("Extract returned nil, want a record")
		}
		if rec.Name != "friday brunch, 11am" {
			t.Errorf("Name = %q, want first line fallback", rec.Name)
		}
		if rec.Date != "2025-05-02" {
			t.Errorf("Date = %q, want next friday 2025-05-02", rec.Date)
		}
		if rec.Time != "11:00" {
			t.Errorf("Time = %q, want 11:00", rec.Time)
		}
		if rec.Location != event.Unspecified {
			t.Errorf("Location = %q, want sentinel", rec.Location)
		}
	})

	t.Run("placeholder name when first line is too short", func(t *testing.T) {
		rec := Extract("go!\nkaraoke wednesday 9pm", "barco", "", now)
		if rec == nil {
			t.Fatal("Extract returned nil, want a record")
		}
		if rec.Name != event.UntitledName {
			t.Errorf("Name = %q, want %q", rec.Name, event.UntitledName)
		}
	})

	t.Run("same-day event is included", func(t *testing.T) {
		rec := Extract("Party tonight at Nine Bar, 1/5/2025", "barco", "", now)
		if rec == nil {
			t.Fatal("Extract returned nil, want a record for a same-day event")
		}
		if rec.Date != "2025-05-01" {
			t.Errorf("Date = %q, want 2025-05-01", rec.Date)
		}
	})

	t.Run("past date is rejected", func(t *testing.T) {
		if rec := Extract("Throwback party at The Spot on 15/3/2020", "barco", "", now); rec != nil {
			t.Errorf("Extract = %+v, want nil for past date", rec)
		}
	})

	t.Run("no date is rejected", func(t *testing.T) {
		if rec := Extract("party at The Spot, be there", "barco", "", now); rec != nil {
			t.Errorf("Extract = %+v, want nil without a resolvable date", rec)
		}
	})

	t.Run("non-event caption is rejected", func(t *testing.T) {
		if rec := Extract("sunset photo dump", "barco", "", now); rec != nil {
			t.Errorf("Extract = %+v, want nil for a non-event caption", rec)
		}
	})
}
