// Package dateparse extracts a due date from free-text task input.
//
// Recognized expressions, tried in order (first match wins):
//
//	오늘, 금일        today
//	M월 D일(까지)      month/day in the reference year, no rollover
//	N일 후, N일 뒤     reference date + N days
//	내일              reference date + 1 day
//	모레              reference date + 2 days
//
// Only the matched span is removed from the text; the remainder is trimmed.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical due date format.
const Layout = "2006-01-02"

var (
	todayPattern     = regexp.MustCompile(`오늘|금일`)
	monthDayPattern  = regexp.MustCompile(`(\d+)\s*월\s*(\d+)\s*일\s*(까지)?`)
	daysLaterPattern = regexp.MustCompile(`(\d+)\s*일\s*(후|뒤)`)
	tomorrowPattern  = regexp.MustCompile(`내일`)
	dayAfterPattern  = regexp.MustCompile(`모레`)
)

// Result is the outcome of Parse. DueDate is empty when no expression matched.
type Result struct {
	Title   string
	DueDate string
}

// Found reports whether a date expression was recognized.
func (r Result) Found() bool {
	return r.DueDate != ""
}

type rule struct {
	re      *regexp.Regexp
	resolve func(m []string, ref time.Time) (time.Time, bool)
}

var rules = []rule{
	{todayPattern, func(_ []string, ref time.Time) (time.Time, bool) {
		return ref, true
	}},
	{monthDayPattern, func(m []string, ref time.Time) (time.Time, bool) {
		month, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		day, err := strconv.Atoi(m[2])
		if err != nil {
			return time.Time{}, false
		}
		// Past dates are kept in the reference year and show up as overdue.
		return time.Date(ref.Year(), time.Month(month), day, 0, 0, 0, 0, ref.Location()), true
	}},
	{daysLaterPattern, func(m []string, ref time.Time) (time.Time, bool) {
		days, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		return ref.AddDate(0, 0, days), true
	}},
	{tomorrowPattern, func(_ []string, ref time.Time) (time.Time, bool) {
		return ref.AddDate(0, 0, 1), true
	}},
	{dayAfterPattern, func(_ []string, ref time.Time) (time.Time, bool) {
		return ref.AddDate(0, 0, 2), true
	}},
}

// Parse looks for the first recognized date expression in text, relative to ref.
// Callers must fall back to the raw input when the returned Title is empty.
func Parse(text string, ref time.Time) Result {
	for _, r := range rules {
		loc := r.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		m := submatches(text, loc)
		due, ok := r.resolve(m, ref)
		if !ok {
			continue
		}
		rest := text[:loc[0]] + text[loc[1]:]
		return Result{
			Title:   strings.TrimSpace(rest),
			DueDate: Format(due),
		}
	}
	return Result{Title: strings.TrimSpace(text)}
}

// Format renders t as a canonical YYYY-MM-DD date.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// ParseDate reads a canonical date as local midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(Layout, strings.TrimSpace(s), time.Local)
}

func submatches(text string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		if loc[2*i] >= 0 {
			out[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}
	return out
}
