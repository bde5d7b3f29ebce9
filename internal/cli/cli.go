package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/gram-events/internal/calendar"
	"github.com/pfrederiksen/gram-events/internal/config"
	"github.com/pfrederiksen/gram-events/internal/event"
	"github.com/pfrederiksen/gram-events/internal/filter"
	"github.com/pfrederiksen/gram-events/internal/logger"
	"github.com/pfrederiksen/gram-events/internal/pipeline"
	"github.com/pfrederiksen/gram-events/internal/scraper"
	"github.com/pfrederiksen/gram-events/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig      string
	flagAccounts    []string
	flagPostsPer    int
	flagDataDir     string
	flagFormat      string
	flagRefresh     bool
	flagVerbose     bool
	flagICSPath     string
	flagDateRange   string
	flagLocations   []string
	flagFromAccount []string
	flagWeekends    bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gram-events",
		Short: "Extract upcoming events from tracked account captions",
		Long: `Pulls recent posts from a set of tracked accounts, extracts structured
event records from the captions, merges duplicates announced by multiple
accounts, and reports the upcoming events in date order.`,
		RunE: runCheck,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "gram-events.yaml", "Path to the YAML config file")
	cmd.Flags().StringSliceVar(&flagAccounts, "accounts", nil, "Account handles to scan (overrides config)")
	cmd.Flags().IntVar(&flagPostsPer, "posts-per-account", 0, "Posts to scan per account (overrides config)")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Data directory for snapshots (overrides config)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagRefresh, "refresh", false, "Re-run extraction even if the snapshot is fresh")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	cmd.Flags().StringVar(&flagICSPath, "ics", "", "Also write the events as an iCalendar file")
	cmd.Flags().StringVar(&flagDateRange, "date-range", "", "Only show events in a range, e.g. 'Mar 1-15' or 'March'")
	cmd.Flags().StringSliceVar(&flagLocations, "location", nil, "Only show events at matching locations")
	cmd.Flags().StringSliceVar(&flagFromAccount, "from", nil, "Only show events announced by these accounts")
	cmd.Flags().BoolVar(&flagWeekends, "weekends-only", false, "Only show Saturday/Sunday events")

	return cmd
}

// runCheck is the main command logic
func runCheck(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if len(flagAccounts) > 0 {
		cfg.Accounts = flagAccounts
	}
	if flagPostsPer > 0 {
		cfg.PostsPerAccount = flagPostsPer
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if len(cfg.Accounts) == 0 {
		return fmt.Errorf("no accounts configured: set accounts in %s or pass --accounts", flagConfig)
	}

	displayFilter, err := buildFilter(time.Now())
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	now := time.Now()
	var events []*event.Event

	if !flagRefresh && !store.IsStale(cfg.RefreshInterval()) {
		// Fresh snapshot: serve it, but re-derive the future filter
		// against the current clock since days_until is advisory once
		// persisted.
		snapshot, err := store.LoadSnapshot()
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}
		logger.Debug("serving persisted snapshot", logger.Fields{
			"path":   store.SnapshotPath(),
			"events": len(snapshot.Events),
		})
		events = event.FilterUpcoming(snapshot.Events, now)
		event.SortByDate(events)
	} else {
		if cfg.Token == "" {
			return fmt.Errorf("scrape proxy token not set: export %s or set token in %s", config.TokenEnvVar, flagConfig)
		}

		p := pipeline.New(scraper.New(cfg.Token), pipeline.Config{
			Accounts:        cfg.Accounts,
			PostsPerAccount: cfg.PostsPerAccount,
			Delay:           cfg.Delay(),
		})
		events = p.Run()

		if err := store.SaveSnapshot(events); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		logger.Debug("snapshot saved", logger.Fields{"path": store.SnapshotPath()})
	}

	events = displayFilter.Apply(events)

	if flagICSPath != "" {
		if err := os.WriteFile(flagICSPath, []byte(calendar.GenerateCalendar(events)), 0644); err != nil {
			return fmt.Errorf("writing calendar: %w", err)
		}
	}

	result := &OutputResult{
		CheckedAt:  time.Now().UTC(),
		Events:     events,
		EventCount: len(events),
		ByAccount:  countByAccount(events),
	}
	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// buildFilter assembles the display filter from flags.
func buildFilter(now time.Time) (*filter.Filter, error) {
	f := filter.New()
	if flagDateRange != "" {
		from, to, err := filter.ParseDateRange(flagDateRange, now)
		if err != nil {
			return nil, err
		}
		f.DateFrom = from
		f.DateTo = to
	}
	f.Locations = flagLocations
	f.Accounts = flagFromAccount
	f.WeekendsOnly = flagWeekends
	return f, nil
}

// countByAccount counts events per contributing account; a merged record
// counts once per account that announced it.
func countByAccount(events []*event.Event) map[string]int {
	counts := make(map[string]int)
	for _, evt := range events {
		for _, account := range evt.Sources {
			counts[account]++
		}
	}
	return counts
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
