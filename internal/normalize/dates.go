package normalize

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is a textual date layout a source renders
type Layout int

const (
	// DateOnly matches "Jan 11" or "Jan11"
	DateOnly Layout = iota
	// DateTime matches "Jan 11 - 7:30 PM"
	DateTime
)

var (
	dateOnlyPattern = regexp.MustCompile(`([A-Z][a-z]{2,3})\s?(\d{1,2})`)
	dateTimePattern = regexp.MustCompile(`([A-Z][a-z]{2,3})\s(\d{1,2})\s-\s(\d{1,2}):(\d{2})\s(AM|PM)`)
	clockPattern    = regexp.MustCompile(`\d{1,2}:\d{2}`)

	monthAbbrevs = map[string]time.Month{
		"Jan": time.January, "Feb": time.February, "Mar": time.March,
		"Apr": time.April, "May": time.May, "Jun": time.June,
		"Jul": time.July, "Aug": time.August, "Sep": time.September,
		"Oct": time.October, "Nov": time.November, "Dec": time.December,
	}
)

// DateResolver turns year-less date descriptions into full timestamps relative
// to a reference moment fixed at construction.
type DateResolver struct {
	year  int
	month time.Month
	loc   *time.Location
}

// NewDateResolver fixes the reference year and month from ref. Resolved
// timestamps carry ref's location.
func NewDateResolver(ref time.Time) *DateResolver {
	return &DateResolver{
		year:  ref.Year(),
		month: ref.Month(),
		loc:   ref.Location(),
	}
}

// Resolve picks the layout from desc: anything carrying a clock time must parse
// as date-with-time, everything else as date-only.
func (r *DateResolver) Resolve(desc string) (time.Time, error) {
	if clockPattern.MatchString(cleanText(desc)) {
		return r.ResolveAs(desc, DateTime)
	}
	return r.ResolveAs(desc, DateOnly)
}

// ResolveAs parses desc with one layout. A month later than the reference month
// is placed in the previous year. PM adds twelve hours with no special case for
// 12 AM or 12 PM, so "12:xx PM" lands outside the day and fails.
func (r *DateResolver) ResolveAs(desc string, layout Layout) (time.Time, error) {
	clean := cleanText(desc)

	pattern := dateOnlyPattern
	if layout == DateTime {
		pattern = dateTimePattern
	}
	m := pattern.FindStringSubmatch(clean)
	if m == nil {
		return time.Time{}, malformed("date", desc, "no recognised date layout")
	}

	month, ok := monthAbbrevs[m[1]]
	if !ok {
		return time.Time{}, malformed("date", desc, "unknown month "+m[1])
	}
	day, _ := strconv.Atoi(m[2])

	year := r.year
	if month > r.month {
		year--
	}
	if day < 1 || day > daysIn(year, month) {
		return time.Time{}, malformed("date", desc, "day out of range")
	}

	hour, minute := 0, 0
	if layout == DateTime {
		hour, _ = strconv.Atoi(m[3])
		minute, _ = strconv.Atoi(m[4])
		if m[5] == "PM" {
			hour += 12
		}
		if hour > 23 || minute > 59 {
			return time.Time{}, malformed("date", desc, "time of day out of range")
		}
	}

	return time.Date(year, month, day, hour, minute, 0, 0, r.loc), nil
}

// ReferenceYear returns the year dates default to
func (r *DateResolver) ReferenceYear() int { return r.year }

// ReferenceMonth returns the month after which dates roll back a year
func (r *DateResolver) ReferenceMonth() time.Month { return r.month }

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// cleanText decodes entities and collapses whitespace, including nbsp
func cleanText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}
