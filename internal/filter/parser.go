package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthAlt = `jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|september|oct|october|nov|november|dec|december`

var (
	reSameMonthRange  = regexp.MustCompile(`(?i)^(` + monthAlt + `)\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	reCrossMonthRange = regexp.MustCompile(`(?i)^(` + monthAlt + `)\s+(\d{1,2})\s*-\s*(` + monthAlt + `)\s+(\d{1,2})$`)
	reWholeMonth      = regexp.MustCompile(`(?i)^(` + monthAlt + `)$`)
)

// ParseDateRange parses a date range string into start and end times.
//
// Supported formats:
//   - "Mar 1-15" or "March 1-15" - same month, different days
//   - "March 1 - April 15" - different months
//   - "March" - entire month
//
// Years are inferred against now: a month already past resolves to next
// year, and a cross-month range ending in an earlier month wraps into the
// following year. Start is at 00:00:00, end at 23:59:59, both UTC.
func ParseDateRange(input string, now time.Time) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	if m := reSameMonthRange.FindStringSubmatch(input); m != nil {
		month, day1, err := monthDay(m[1], m[2])
		if err != nil {
			return nil, nil, err
		}
		day2, err := parseDay(m[3])
		if err != nil {
			return nil, nil, err
		}

		year := yearForMonth(month, now)
		from := time.Date(year, month, day1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, month, day2, 23, 59, 59, 0, time.UTC)
		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}
		return &from, &to, nil
	}

	if m := reCrossMonthRange.FindStringSubmatch(input); m != nil {
		month1, day1, err := monthDay(m[1], m[2])
		if err != nil {
			return nil, nil, err
		}
		month2, day2, err := monthDay(m[3], m[4])
		if err != nil {
			return nil, nil, err
		}

		year1 := yearForMonth(month1, now)
		year2 := yearForMonth(month2, now)
		// An end month before the start month wraps into next year.
		if month2 < month1 {
			year2 = year1 + 1
		}

		from := time.Date(year1, month1, day1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year2, month2, day2, 23, 59, 59, 0, time.UTC)
		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}
		return &from, &to, nil
	}

	if m := reWholeMonth.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		if month == 0 {
			return nil, nil, fmt.Errorf("invalid month: %s", m[1])
		}
		year := yearForMonth(month, now)
		from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, month+1, 0, 23, 59, 59, 0, time.UTC)
		return &from, &to, nil
	}

	return nil, nil, fmt.Errorf("invalid date range format. Use 'Mar 1-15', 'March 1 - April 15', or 'March'")
}

func monthDay(monthName, dayText string) (time.Month, int, error) {
	month := parseMonth(monthName)
	if month == 0 {
		return 0, 0, fmt.Errorf("invalid month: %s", monthName)
	}
	day, err := parseDay(dayText)
	if err != nil {
		return 0, 0, err
	}
	return month, day, nil
}

func parseDay(text string) (int, error) {
	day, err := strconv.Atoi(text)
	if err != nil || day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid day: %s", text)
	}
	return day, nil
}

// parseMonth converts a month name or abbreviation to time.Month.
func parseMonth(name string) time.Month {
	months := map[string]time.Month{
		"jan": time.January, "january": time.January,
		"feb": time.February, "february": time.February,
		"mar": time.March, "march": time.March,
		"apr": time.April, "april": time.April,
		"may": time.May,
		"jun": time.June, "june": time.June,
		"jul": time.July, "july": time.July,
		"aug": time.August, "august": time.August,
		"sep": time.September, "september": time.September,
		"oct": time.October, "october": time.October,
		"nov": time.November, "november": time.November,
		"dec": time.December, "december": time.December,
	}
	return months[strings.ToLower(strings.TrimSpace(name))]
}

// yearForMonth returns the year for a month with no explicit year: the
// current year, or the next one if the month has already passed.
func yearForMonth(month time.Month, now time.Time) int {
	year := now.Year()
	if month < now.Month() {
		year++
	}
	return year
}
