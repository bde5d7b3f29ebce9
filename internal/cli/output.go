package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pfrederiksen/gram-events/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

const captionPreviewLen = 150

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt  time.Time      `json:"checked_at"`
	Events     []*event.Event `json:"events"`
	EventCount int            `json:"event_count"`
	ByAccount  map[string]int `json:"by_account,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.EventCount == 0 {
		fmt.Fprintln(w, "No future events found.")
		return nil
	}

	for i, evt := range result.Events {
		fmt.Fprintf(w, "\n#%d %s\n", i+1, evt.Name)
		fmt.Fprintf(w, "  Date:     %s (in %d days)\n", evt.Date, evt.DaysUntil)
		fmt.Fprintf(w, "  Time:     %s\n", evt.Time)
		fmt.Fprintf(w, "  Location: %s\n", evt.Location)
		fmt.Fprintf(w, "  Sources:  %s\n", joinHandles(evt.Sources))
		if evt.Permalink != "" {
			fmt.Fprintf(w, "  Post:     %s\n", evt.Permalink)
		}
		if verbose {
			fmt.Fprintf(w, "  Caption:  %s\n", previewCaption(evt.Caption))
		}
	}

	fmt.Fprintf(w, "\nTotal: %d upcoming events\n", result.EventCount)

	if len(result.ByAccount) > 0 {
		accounts := make([]string, 0, len(result.ByAccount))
		for account := range result.ByAccount {
			accounts = append(accounts, account)
		}
		sort.Strings(accounts)

		fmt.Fprintln(w, "\nEvents by account:")
		for _, account := range accounts {
			fmt.Fprintf(w, "  @%s: %d\n", account, result.ByAccount[account])
		}
	}
	return nil
}

func joinHandles(sources []string) string {
	handles := make([]string, len(sources))
	for i, s := range sources {
		handles[i] = "@" + s
	}
	return strings.Join(handles, ", ")
}

func previewCaption(caption string) string {
	flat := strings.ReplaceAll(caption, "\n", " ")
	if len(flat) > captionPreviewLen {
		return flat[:captionPreviewLen] + "..."
	}
	return flat
}
