// Package todo is the task lifecycle engine: an in-memory collection of tasks,
// each with a status, an optional due date and an append-only log.
package todo

import (
	"encoding/json"
	"time"
)

// Status is the completion state of a task.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Log entry action tags written by the store. Imported logs may carry any tag.
const (
	ActionCreate     = "create"
	ActionComplete   = "complete"
	ActionReopen     = "reopen"
	ActionUpdate     = "update"
	ActionReschedule = "reschedule"
	ActionRecover    = "init"
)

// TimestampLayout formats LogEntry.Date in local time.
const TimestampLayout = "2006. 1. 2. 15:04:05"

// LogEntry is one immutable record in a task's timeline.
type LogEntry struct {
	Date   string `json:"date" yaml:"date"`
	Action string `json:"action" yaml:"action"`
	Note   string `json:"note,omitempty" yaml:"note,omitempty"`
	Image  string `json:"image,omitempty" yaml:"image,omitempty"`
}

// Task is a single todo. Create tasks through Store.Create; the store owns mutation.
type Task struct {
	ID      int64      `json:"id" yaml:"id"`
	Title   string     `json:"title" yaml:"title"`
	Status  Status     `json:"status" yaml:"status"`
	DueDate string     `json:"dueDate" yaml:"dueDate,omitempty"`
	Logs    []LogEntry `json:"logs" yaml:"logs"`
}

// MarshalJSON writes a missing due date as null.
func (t Task) MarshalJSON() ([]byte, error) {
	type plain Task
	var due *string
	if t.DueDate != "" {
		due = &t.DueDate
	}
	return json.Marshal(struct {
		plain
		DueDate *string `json:"dueDate"`
	}{plain(t), due})
}

// Done reports whether the task is completed.
func (t Task) Done() bool {
	return t.Status == StatusDone
}

// CreatedAt returns the timestamp of the creation entry.
func (t Task) CreatedAt() string {
	if len(t.Logs) == 0 {
		return ""
	}
	return t.Logs[0].Date
}

// Clone returns a copy that shares no log storage with t.
func (t Task) Clone() Task {
	c := t
	c.Logs = append([]LogEntry(nil), t.Logs...)
	return c
}

func stamp(t time.Time) string {
	return t.In(time.Local).Format(TimestampLayout)
}

func cloneAll(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
