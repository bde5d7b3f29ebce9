// Package calendar renders extracted events as iCalendar (.ics) data so the
// upcoming list can be imported into a calendar app.
package calendar

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/gram-events/internal/event"
)

const defaultDuration = 3 * time.Hour

// GenerateCalendar renders the event list as a single VCALENDAR.
func GenerateCalendar(events []*event.Event) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//gram-events//gram-events//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	now := time.Now().UTC()
	for _, evt := range events {
		writeVEvent(&ics, evt, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeVEvent(ics *strings.Builder, evt *event.Event, stamp time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	// Deterministic UID from the identity fields so re-imports update
	// rather than duplicate.
	h := sha1.New()
	h.Write([]byte(evt.Name + "|" + evt.Date + "|" + evt.Location))
	fmt.Fprintf(ics, "UID:%x@gram-events\r\n", h.Sum(nil))

	fmt.Fprintf(ics, "DTSTAMP:%s\r\n", formatICSTime(stamp))

	date := evt.DateValue()
	if start, ok := startAt(date, evt.Time); ok {
		fmt.Fprintf(ics, "DTSTART:%s\r\n", formatICSTime(start))
		fmt.Fprintf(ics, "DTEND:%s\r\n", formatICSTime(start.Add(defaultDuration)))
	} else {
		// No clock time known: emit an all-day entry.
		fmt.Fprintf(ics, "DTSTART;VALUE=DATE:%s\r\n", date.Format("20060102"))
		fmt.Fprintf(ics, "DTEND;VALUE=DATE:%s\r\n", date.AddDate(0, 0, 1).Format("20060102"))
	}

	fmt.Fprintf(ics, "SUMMARY:%s\r\n", escapeICS(evt.Name))

	description := fmt.Sprintf("Announced by %s", strings.Join(evt.Sources, ", "))
	if evt.Permalink != "" {
		description += "\n" + evt.Permalink
	}
	fmt.Fprintf(ics, "DESCRIPTION:%s\r\n", escapeICS(description))

	if evt.Location != event.Unspecified {
		fmt.Fprintf(ics, "LOCATION:%s\r\n", escapeICS(evt.Location))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// startAt combines the event date with its "HH:MM" time, when one is known.
func startAt(date time.Time, clock string) (time.Time, bool) {
	if clock == event.Unspecified {
		return time.Time{}, false
	}
	var hour, minute int
	if _, err := fmt.Sscanf(clock, "%d:%d", &hour, &minute); err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC), true
}

// formatICSTime formats a time in iCalendar UTC form (yyyymmddThhmmssZ).
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters per RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
