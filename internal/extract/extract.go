package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/pfrederiksen/gram-events/internal/dates"
	"github.com/pfrederiksen/gram-events/internal/event"
)

// locationPatterns introduce a venue, tried in order; the capture runs to the
// next comma or line break. First match wins.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)at\s+([^,\n]+)`),
	regexp.MustCompile(`(?i)in\s+([^,\n]+)`),
	regexp.MustCompile(`(?i)venue[:\s]+([^,\n]+)`),
	regexp.MustCompile(`(?i)location[:\s]+([^,\n]+)`),
}

// namePatterns pull an event title out of a caption, tried in order:
// a capitalized phrase before a category noun, the object of an invitation
// phrase, or a capitalized phrase before "Edition".
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:Party|Ball|Event|Show|Concert|Festival|Meet|Gathering)`),
	regexp.MustCompile(`(?:Join us for|Don't miss|Be there for)\s+([^,\n]+)`),
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+Edition`),
}

// Extract builds a structured event record from a caption, or returns nil if
// the caption does not describe an upcoming dated event. Each gate is hard:
// the caption must classify as a prospective event and must yield a date on
// or after the reference day. Time and location are optional; the name falls
// back to the caption's first line, then to a placeholder.
func Extract(caption, account, permalink string, now time.Time) *event.Event {
	if !IsProspectiveEvent(caption, now) {
		return nil
	}

	date, ok := dates.ResolveDate(caption, now)
	if !ok {
		return nil
	}
	if date.Before(dates.Day(now)) {
		return nil
	}

	timeOfDay, _ := dates.ResolveTime(caption)

	return event.New(
		extractName(caption),
		date.Format(event.ISODate),
		timeOfDay,
		extractLocation(caption),
		caption,
		account,
		permalink,
	)
}

// extractLocation returns the first venue-like capture, or "" if none.
func extractLocation(caption string) string {
	for _, re := range locationPatterns {
		if m := re.FindStringSubmatch(caption); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// extractName returns the first title-like capture. Failing that, the
// caption's first line serves as the name when its length is strictly
// between 5 and 100 characters; otherwise "" (the record falls back to a
// placeholder).
func extractName(caption string) string {
	for _, re := range namePatterns {
		if m := re.FindStringSubmatch(caption); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	firstLine := caption
	if i := strings.IndexByte(caption, '\n'); i >= 0 {
		firstLine = caption[:i]
	}
	firstLine = strings.TrimSpace(firstLine)
	if len(firstLine) > 5 && len(firstLine) < 100 {
		return firstLine
	}
	return ""
}
