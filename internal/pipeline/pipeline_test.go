package pipeline

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/pfrederiksen/gram-events/internal/scraper"
)

type stubFetcher struct {
	posts map[string][]scraper.Post
	calls []string
	count int
}

func (f *stubFetcher) FetchPosts(account string, count int) ([]scraper.Post, error) {
	f.calls = append(f.calls, account)
	f.count = count
	posts, ok := f.posts[account]
	if !ok {
		return nil, fmt.Errorf("profile not found: %s", account)
	}
	return posts, nil
}

func TestRun(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	fetcher := &stubFetcher{
		posts: map[string][]scraper.Post{
			"venue_a": {
				{Caption: "Glow Party at Warehouse 9, 15/3/2026", Permalink: "https://www.instagram.com/p/aaa/"},
				{Caption: "Trivia Night party at The Lounge, 5/6/2025 8pm"},
			},
			"venue_b": {
				{Caption: "Trivia Night party at The Lounge, 5/6/2025 8pm"},
				{Caption: "old show at Dive Bar, 1/1/2020"},
				{Caption: "sunset photo dump"},
			},
		},
	}

	p := New(fetcher, Config{
		Accounts:        []string{"venue_a", "broken", "venue_b"},
		PostsPerAccount: 5,
		Now:             func() time.Time { return now },
	})
	got := p.Run()

	// The failing middle account must not abort the batch.
	if want := []string{"venue_a", "broken", "venue_b"}; !reflect.DeepEqual(fetcher.calls, want) {
		t.Fatalf("fetched accounts = %v, want %v", fetcher.calls, want)
	}
	if fetcher.count != 5 {
		t.Errorf("posts per account = %d, want 5", fetcher.count)
	}

	if len(got) != 2 {
		t.Fatalf("Run returned %d events, want 2: %+v", len(got), got)
	}

	// Ascending by date: the trivia night comes before next year's party.
	trivia, glow := got[0], got[1]
	if trivia.Date != "2025-06-05" || glow.Date != "2026-03-15" {
		t.Fatalf("dates = %s, %s, want 2025-06-05 then 2026-03-15", trivia.Date, glow.Date)
	}

	// The duplicate announcement merged across both accounts.
	if want := []string{"venue_a", "venue_b"}; !reflect.DeepEqual(trivia.Sources, want) {
		t.Errorf("merged sources = %v, want %v", trivia.Sources, want)
	}
	if trivia.Time != "20:00" || trivia.Location != "The Lounge" {
		t.Errorf("merged record fields = %q %q", trivia.Time, trivia.Location)
	}
	if trivia.DaysUntil != 35 {
		t.Errorf("DaysUntil = %d, want 35", trivia.DaysUntil)
	}

	if glow.Permalink != "https://www.instagram.com/p/aaa/" {
		t.Errorf("permalink = %q, want first contributing post's", glow.Permalink)
	}
}

func TestRunAllSourcesFailing(t *testing.T) {
	p := New(&stubFetcher{}, Config{
		Accounts: []string{"a", "b"},
		Now:      func() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) },
	})

	if got := p.Run(); len(got) != 0 {
		t.Errorf("Run = %v, want empty list", got)
	}
}
