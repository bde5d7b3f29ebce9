package pipeline

import (
	"time"

	"github.com/pfrederiksen/gram-events/internal/event"
	"github.com/pfrederiksen/gram-events/internal/extract"
	"github.com/pfrederiksen/gram-events/internal/logger"
	"github.com/pfrederiksen/gram-events/internal/scraper"
)

// DefaultDelay is the politeness pause between account fetches.
const DefaultDelay = 1 * time.Second

// Fetcher supplies recent posts for an account. Implemented by
// scraper.Client; tests substitute a stub.
type Fetcher interface {
	FetchPosts(account string, count int) ([]scraper.Post, error)
}

// Config holds the orchestration parameters.
type Config struct {
	// Accounts is the ordered list of source accounts.
	Accounts []string

	// PostsPerAccount caps how many recent posts are scanned per account.
	PostsPerAccount int

	// Delay is the pause between account fetches. Zero disables it,
	// which tests and rate-limit-exempt setups rely on.
	Delay time.Duration

	// Now supplies the reference time for date resolution and the
	// future filter. Defaults to time.Now.
	Now func() time.Time
}

// Pipeline extracts, merges, and orders event records across accounts.
type Pipeline struct {
	fetcher Fetcher
	cfg     Config
}

// New creates a Pipeline over the given fetcher.
func New(fetcher Fetcher, cfg Config) *Pipeline {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.PostsPerAccount <= 0 {
		cfg.PostsPerAccount = 10
	}
	return &Pipeline{fetcher: fetcher, cfg: cfg}
}

// Run processes every configured account and returns the merged, upcoming,
// date-ordered event list. The worst outcome is an empty list; per-account
// failures are logged and skipped.
func (p *Pipeline) Run() []*event.Event {
	now := p.cfg.Now()
	records := make([]*event.Event, 0)

	for i, account := range p.cfg.Accounts {
		if i > 0 && p.cfg.Delay > 0 {
			time.Sleep(p.cfg.Delay)
		}

		start := time.Now()
		posts, err := p.fetcher.FetchPosts(account, p.cfg.PostsPerAccount)
		logger.RecordTiming("pipeline.fetch", time.Since(start))
		if err != nil {
			logger.Warn("account fetch failed, skipping", logger.Fields{
				"account": account,
				"error":   err.Error(),
			})
			continue
		}
		logger.IncrCounter("pipeline.posts_scanned", int64(len(posts)))

		found := 0
		for _, post := range posts {
			rec := extract.Extract(post.Caption, account, post.Permalink, now)
			if rec == nil {
				continue
			}
			records = append(records, rec)
			found++
			logger.Debug("extracted event", logger.Fields{
				"account": account,
				"name":    rec.Name,
				"date":    rec.Date,
			})
		}

		logger.Info("account processed", logger.Fields{
			"account": account,
			"posts":   len(posts),
			"events":  found,
		})
	}

	merged := event.Dedupe(records)
	logger.IncrCounter("pipeline.events_extracted", int64(len(records)))
	logger.IncrCounter("pipeline.events_merged", int64(len(records)-len(merged)))

	upcoming := event.FilterUpcoming(merged, now)
	event.SortByDate(upcoming)

	logger.Info("pipeline complete", logger.Fields{
		"extracted": len(records),
		"merged":    len(merged),
		"upcoming":  len(upcoming),
	})
	return upcoming
}
