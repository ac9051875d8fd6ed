package todo

import (
	"encoding/csv"
	"io"
	"regexp"
	"strings"
)

// ExportHeader is the fixed column header of the CSV export.
var ExportHeader = []string{"date", "D-Day", "title", "status", "log-date", "content"}

const byteOrderMark = "\ufeff"

// Row is one log entry flattened with its task's context.
type Row struct {
	CreatedAt string
	Deadline  string
	Title     string
	Status    string
	LogDate   string
	Note      string
	HasImage  bool
}

// Fields returns the row as CSV columns.
func (r Row) Fields() []string {
	content := r.Note
	if r.HasImage {
		content = strings.TrimSpace(content + " (photo)")
	}
	return []string{r.CreatedAt, r.Deadline, r.Title, r.Status, r.LogDate, content}
}

// ToRows emits one row per log entry, in collection and log order.
func ToRows(tasks []Task) []Row {
	var rows []Row
	for _, t := range tasks {
		due := "-"
		if t.DueDate != "" {
			due = "deadline:" + t.DueDate
		}
		title := sanitize(t.Title)
		created := sanitize(t.CreatedAt())

		for _, l := range t.Logs {
			rows = append(rows, Row{
				CreatedAt: created,
				Deadline:  due,
				Title:     title,
				Status:    string(t.Status),
				LogDate:   sanitize(l.Date),
				Note:      sanitize(l.Note),
				HasImage:  l.Image != "",
			})
		}
	}
	return rows
}

// WriteCSV writes rows as UTF-8 CSV with a leading byte-order mark.
func WriteCSV(w io.Writer, rows []Row) error {
	if _, err := io.WriteString(w, byteOrderMark); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var lineBreaks = regexp.MustCompile(`[\r\n]+`)

// sanitize replaces commas and line breaks so a value never spans cells or rows.
func sanitize(s string) string {
	return lineBreaks.ReplaceAllString(strings.ReplaceAll(s, ",", " "), " ")
}
