// Package deadline classifies how close a due date is relative to today.
package deadline

import (
	"fmt"
	"math"
	"time"

	"daylog/pkg/dateparse"
)

// Urgency is the display tier of a D-Day label.
type Urgency int

const (
	Normal Urgency = iota
	Warning
	Urgent
	Past
)

func (u Urgency) String() string {
	switch u {
	case Urgent:
		return "urgent"
	case Warning:
		return "warning"
	case Past:
		return "past"
	default:
		return "normal"
	}
}

// Label is a relative-urgency badge such as "D-Day", "D-3" or "D+2".
type Label struct {
	Text    string
	Urgency Urgency
	Days    int
}

// Classify returns the label for dueDate (YYYY-MM-DD) as seen from today.
// It returns nil when there is no due date or it cannot be read.
func Classify(dueDate string, today time.Time) *Label {
	if dueDate == "" {
		return nil
	}
	due, err := dateparse.ParseDate(dueDate)
	if err != nil {
		return nil
	}
	diff := DaysBetween(today, due)

	switch {
	case diff == 0:
		return &Label{Text: "D-Day", Urgency: Urgent, Days: diff}
	case diff == 1:
		return &Label{Text: "D-1", Urgency: Urgent, Days: diff}
	case diff > 1 && diff <= 3:
		return &Label{Text: fmt.Sprintf("D-%d", diff), Urgency: Warning, Days: diff}
	case diff > 3:
		return &Label{Text: fmt.Sprintf("D-%d", diff), Urgency: Normal, Days: diff}
	default:
		return &Label{Text: fmt.Sprintf("D+%d", -diff), Urgency: Past, Days: diff}
	}
}

// DaysBetween returns the whole number of days from a to b, both taken at local
// midnight. Rounding absorbs the 23h/25h days around DST changes.
func DaysBetween(a, b time.Time) int {
	hours := Midnight(b).Sub(Midnight(a)).Hours()
	return int(math.Round(hours / 24))
}

// Midnight truncates t to the start of its day in the local zone.
func Midnight(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
