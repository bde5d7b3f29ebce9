package storage

import (
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/gram-events/internal/event"
)

// WriteReport renders events as the fixed-format text report. The field
// order per block (name, date, time, location, sources, days until, caption,
// permalink) is a contract with the web layer, which regex-parses it.
func WriteReport(w io.Writer, events []*event.Event) error {
	header := "UPCOMING EVENTS FROM TRACKED ACCOUNTS\n" + strings.Repeat("=", 60) + "\n\n"
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	rule := strings.Repeat("-", 50)
	for i, evt := range events {
		var b strings.Builder
		fmt.Fprintf(&b, "EVENT #%d\n%s\n", i+1, rule)
		fmt.Fprintf(&b, "Event Name: %s\n", evt.Name)
		fmt.Fprintf(&b, "Date: %s\n", evt.Date)
		fmt.Fprintf(&b, "Time: %s\n", evt.Time)
		fmt.Fprintf(&b, "Location: %s\n", evt.Location)
		fmt.Fprintf(&b, "Sources: %s\n", formatSources(evt.Sources))
		fmt.Fprintf(&b, "Days until event: %d\n", evt.DaysUntil)
		fmt.Fprintf(&b, "Full caption:\n%s\n", evt.Caption)
		if evt.Permalink != "" {
			fmt.Fprintf(&b, "Post: %s\n", evt.Permalink)
		}
		fmt.Fprintf(&b, "%s\n\n", rule)

		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func formatSources(sources []string) string {
	handles := make([]string, len(sources))
	for i, s := range sources {
		handles[i] = "@" + s
	}
	return strings.Join(handles, ", ")
}
