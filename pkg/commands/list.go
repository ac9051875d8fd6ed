package commands

import (
	"fmt"
	"io"
	"time"

	"daylog/pkg/deadline"
	"daylog/pkg/todo"
)

// ListOptions controls the list command output.
type ListOptions struct {
	Pending  bool // hide done tasks
	Timeline bool // print each task's log below it
}

// HandleList prints the tasks in display order with their D-Day badges.
func HandleList(w io.Writer, store *todo.Store, opts ListOptions) error {
	now := store.Now()
	tasks := todo.Order(store.Tasks(), now)

	shown := 0
	for _, t := range tasks {
		if opts.Pending && t.Done() {
			continue
		}
		shown++

		fmt.Fprintf(w, "%-14d %s %-6s %s\n", t.ID, statusMark(t), badgeText(t, now), t.Title)
		if opts.Timeline {
			for _, l := range t.Logs {
				fmt.Fprintf(w, "    %s  %-10s %s%s\n", l.Date, l.Action, l.Note, photoMark(l))
			}
		}
	}

	if shown == 0 {
		fmt.Fprintln(w, "No tasks")
	}
	return nil
}

func statusMark(t todo.Task) string {
	if t.Done() {
		return "[x]"
	}
	return "[ ]"
}

// badgeText is empty for done tasks and tasks without a deadline.
func badgeText(t todo.Task, today time.Time) string {
	if t.Done() {
		return ""
	}
	if l := deadline.Classify(t.DueDate, today); l != nil {
		return l.Text
	}
	return ""
}

func photoMark(l todo.LogEntry) string {
	if l.Image == "" {
		return ""
	}
	return " (photo)"
}
