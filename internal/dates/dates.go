package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// rule is a single entry in the date resolution cascade. The pattern gates
// whether the rule applies; resolve turns the match into a calendar date.
// A rule may decline (ok=false) even after its pattern matched, e.g. for an
// impossible day-of-month, in which case the cascade moves on.
type rule struct {
	name    string
	pattern *regexp.Regexp
	resolve func(m []string, text string, now time.Time) (time.Time, bool)
}

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

var weekdaysByName = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
	"sunday": time.Sunday,
}

var (
	reNumericFull  = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`)
	reNumericShort = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})\b`)
	reMonthName    = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	reBareDay      = regexp.MustCompile(`\b(\d{1,2})\b`)
	reYear         = regexp.MustCompile(`\b(20\d{2})\b`)
	reRelative     = regexp.MustCompile(`\b(tomorrow|next\s+(?:week|month|year|monday|tuesday|wednesday|thursday|friday|saturday|sunday))\b`)
	reWeekend      = regexp.MustCompile(`\b(this|next)\s+weekend\b`)
	reWeekday      = regexp.MustCompile(`\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)

	reClockTime = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(am|pm)\b`)
	reHourTime  = regexp.MustCompile(`\b(\d{1,2})\s*(am|pm)\b`)
)

// dateRules is the resolution cascade, in contract order.
var dateRules = []rule{
	{name: "numeric D/M/Y", pattern: reNumericFull, resolve: resolveNumericFull},
	{name: "numeric D/M", pattern: reNumericShort, resolve: resolveNumericShort},
	{name: "named month", pattern: reMonthName, resolve: resolveNamedMonth},
	{name: "relative keyword", pattern: reRelative, resolve: resolveRelative},
	{name: "weekend", pattern: reWeekend, resolve: resolveWeekend},
	{name: "bare weekday", pattern: reWeekday, resolve: resolveWeekday},
}

// ResolveDate extracts a calendar date from text, resolving relative and
// ambiguous expressions against now. The returned date is truncated to
// midnight UTC. ok is false when no rule matches.
func ResolveDate(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)
	for _, r := range dateRules {
		m := r.pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if d, ok := r.resolve(m, lower, now); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// ResolveTime extracts a clock time from text and returns it in 24-hour
// "HH:MM" form. Recognizes "H:MM am/pm" and "H am/pm"; a missing minute
// component defaults to zero.
func ResolveTime(text string) (string, bool) {
	lower := strings.ToLower(text)

	if m := reClockTime.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if h, ok := to24Hour(hour, m[3]); ok && minute < 60 {
			return fmt.Sprintf("%02d:%02d", h, minute), true
		}
	}
	if m := reHourTime.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if h, ok := to24Hour(hour, m[2]); ok {
			return fmt.Sprintf("%02d:00", h), true
		}
	}
	return "", false
}

func to24Hour(hour int, period string) (int, bool) {
	if hour < 1 || hour > 12 {
		return 0, false
	}
	if period == "pm" && hour != 12 {
		hour += 12
	} else if period == "am" && hour == 12 {
		hour = 0
	}
	return hour, true
}

// Day truncates t to midnight UTC, the granularity all resolved dates share.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// makeDate builds a date and rejects values that would roll over, e.g.
// day 31 in a 30-day month.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// resolveNumericFull handles explicit day/month/year ("15/3/2026", "15-3-2026").
func resolveNumericFull(m []string, _ string, _ time.Time) (time.Time, bool) {
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return makeDate(year, time.Month(month), day)
}

// resolveNumericShort handles day/month without a year. The year is the
// reference year, rolled forward by one if the date has already passed, so
// this rule never produces a past date.
func resolveNumericShort(m []string, _ string, now time.Time) (time.Time, bool) {
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	d, ok := makeDate(now.Year(), time.Month(month), day)
	if !ok {
		return time.Time{}, false
	}
	if d.Before(Day(now)) {
		return makeDate(now.Year()+1, time.Month(month), day)
	}
	return d, true
}

// resolveNamedMonth handles "March 15", "15 March 2026" and similar. The day
// is the nearest bare 1-2 digit number, the year a nearby "20xx" if present.
// The forward roll applies only when the text carried no explicit year.
func resolveNamedMonth(m []string, text string, now time.Time) (time.Time, bool) {
	month, ok := monthsByName[m[1]]
	if !ok {
		return time.Time{}, false
	}

	// Strip any 4-digit year before looking for the day so "March 2026"
	// does not read "20" as a day.
	year := 0
	withoutYear := text
	if ym := reYear.FindStringSubmatch(text); ym != nil {
		year, _ = strconv.Atoi(ym[1])
		withoutYear = reYear.ReplaceAllString(text, "")
	}

	dm := reBareDay.FindStringSubmatch(withoutYear)
	if dm == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(dm[1])

	if year != 0 {
		return makeDate(year, month, day)
	}
	d, ok := makeDate(now.Year(), month, day)
	if !ok {
		return time.Time{}, false
	}
	if d.Before(Day(now)) {
		return makeDate(now.Year()+1, month, day)
	}
	return d, true
}

// resolveRelative handles "tomorrow", "next week/month/year" and
// "next <weekday>". A named weekday on the reference day itself advances a
// full week, never resolving to today.
func resolveRelative(m []string, _ string, now time.Time) (time.Time, bool) {
	today := Day(now)
	switch kw := m[1]; {
	case kw == "tomorrow":
		return today.AddDate(0, 0, 1), true
	case strings.HasSuffix(kw, "week"):
		return today.AddDate(0, 0, 7), true
	case strings.HasSuffix(kw, "month"):
		return today.AddDate(0, 1, 0), true
	case strings.HasSuffix(kw, "year"):
		return today.AddDate(1, 0, 0), true
	default:
		name := strings.TrimSpace(strings.TrimPrefix(kw, "next"))
		wd, ok := weekdaysByName[strings.TrimSpace(name)]
		if !ok {
			return time.Time{}, false
		}
		return today.AddDate(0, 0, daysUntilWeekday(today, wd)), true
	}
}

// resolveWeekend handles "this weekend" and "next weekend". Both resolve to
// the upcoming Saturday; on a Saturday, "this weekend" is today and
// "next weekend" is the Saturday a week later.
func resolveWeekend(m []string, _ string, now time.Time) (time.Time, bool) {
	today := Day(now)
	offset := (int(time.Saturday) - int(today.Weekday()) + 7) % 7
	if m[1] == "next" && offset == 0 {
		offset = 7
	}
	return today.AddDate(0, 0, offset), true
}

// resolveWeekday handles a bare weekday name: the next occurrence strictly
// after the reference day, so the offset is always 1..7.
func resolveWeekday(m []string, _ string, now time.Time) (time.Time, bool) {
	wd, ok := weekdaysByName[m[1]]
	if !ok {
		return time.Time{}, false
	}
	today := Day(now)
	return today.AddDate(0, 0, daysUntilWeekday(today, wd)), true
}

func daysUntilWeekday(today time.Time, wd time.Weekday) int {
	offset := (int(wd) - int(today.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return offset
}
