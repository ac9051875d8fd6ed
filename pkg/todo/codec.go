package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"daylog/pkg/dateparse"
	"daylog/pkg/utils"
)

const untitled = "Untitled"

// Encode serializes the collection in the persisted layout.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	return json.Marshal(tasks)
}

// Decode reads the persisted layout, upgrading legacy records: a missing
// status is taken from the old "completed" flag, a missing title from "text",
// missing or duplicate ids are reallocated from now, and a task without a
// proper log sequence gets a single recovery entry.
func Decode(data []byte, now time.Time) ([]Task, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []Task{}, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]Task, 0, len(raws))
	for i, raw := range raws {
		rec, err := readRecord(raw)
		if err != nil {
			utils.Log("Skipping stored record %d: %v", i, err)
			continue
		}
		tasks = append(tasks, rec.upgrade(now))
	}

	assignIDs(tasks, now)
	return tasks, nil
}

// NormalizeRecord validates one import record and upgrades it into a Task.
// A record without an id or a title is rejected with a *MalformedRecordError.
func NormalizeRecord(index int, raw json.RawMessage, now time.Time) (Task, error) {
	rec, err := readRecord(raw)
	if err != nil {
		return Task{}, &MalformedRecordError{Index: index, Reason: err.Error()}
	}
	if rec.id == 0 {
		return Task{}, &MalformedRecordError{Index: index, Reason: "missing id"}
	}
	if rec.title == "" {
		return Task{}, &MalformedRecordError{Index: index, Reason: "missing title"}
	}
	return rec.upgrade(now), nil
}

// ParseImport splits import data into raw records. A single object is
// treated as a one-element sequence.
func ParseImport(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &ParseError{Err: errors.New("empty input")}
	}
	if !json.Valid(data) {
		return nil, &ParseError{Err: errors.New("not valid JSON")}
	}

	switch data[0] {
	case '[':
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, &ParseError{Err: err}
		}
		return raws, nil
	case '{':
		return []json.RawMessage{json.RawMessage(data)}, nil
	default:
		return nil, &ParseError{Err: errors.New("expected a task object or a list of tasks")}
	}
}

// Import parses a backup file and merges its records into the store.
// Unreadable data aborts the whole import; bad records are skipped.
func (s *Store) Import(data []byte) (MergeResult, error) {
	raws, err := ParseImport(data)
	if err != nil {
		return MergeResult{}, err
	}

	now := s.now()
	var (
		valid    []Task
		rejected []error
	)
	for i, raw := range raws {
		t, err := NormalizeRecord(i, raw, now)
		if err != nil {
			rejected = append(rejected, err)
			continue
		}
		valid = append(valid, t)
	}

	res, err := s.MergeImport(valid)
	res.Rejected = append(rejected, res.Rejected...)
	return res, err
}

// Backup serializes one task as a one-element list so it can be imported later.
func (s *Store) Backup(id int64) ([]byte, error) {
	t, ok := s.Get(id)
	if !ok {
		return nil, fmt.Errorf("backup %d: %w", id, ErrNotFound)
	}
	return json.MarshalIndent([]Task{t}, "", "  ")
}

// BackupAll serializes the whole collection.
func (s *Store) BackupAll() ([]byte, error) {
	if len(s.tasks) == 0 {
		return nil, &ValidationError{Field: "tasks", Reason: "nothing to back up"}
	}
	return json.MarshalIndent(s.tasks, "", "  ")
}

// record is a loosely typed task as found in stored or imported JSON.
type record struct {
	id        int64
	title     string
	text      string
	status    string
	completed bool
	dueDate   string
	logs      []LogEntry
	logsOK    bool
}

func readRecord(raw json.RawMessage) (record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return record{}, errors.New("not an object")
	}

	rec := record{
		id:        readID(fields["id"]),
		title:     strings.TrimSpace(readString(fields["title"])),
		text:      strings.TrimSpace(readString(fields["text"])),
		status:    readString(fields["status"]),
		completed: readBool(fields["completed"]),
		dueDate:   readString(fields["dueDate"]),
	}
	rec.logs, rec.logsOK = readLogs(fields["logs"])
	return rec, nil
}

func (r record) upgrade(now time.Time) Task {
	t := Task{
		ID:      r.id,
		Title:   firstNonEmpty(r.title, r.text, untitled),
		Status:  upgradeStatus(r.status, r.completed),
		DueDate: upgradeDueDate(r.dueDate),
		Logs:    r.logs,
	}
	if !r.logsOK {
		t.Logs = []LogEntry{{Date: stamp(now), Action: ActionRecover, Note: "data recovered"}}
	}
	return t
}

func upgradeStatus(status string, completed bool) Status {
	switch strings.TrimSpace(status) {
	case string(StatusDone), "완료":
		return StatusDone
	case string(StatusInProgress), "진행중":
		return StatusInProgress
	}
	if completed {
		return StatusDone
	}
	return StatusInProgress
}

func upgradeDueDate(due string) string {
	if due == "" {
		return ""
	}
	d, err := dateparse.ParseDate(due)
	if err != nil {
		utils.Log("Dropping unreadable due date %q", due)
		return ""
	}
	return dateparse.Format(d)
}

// assignIDs gives records without an id, or with an id already used, a fresh one.
func assignIDs(tasks []Task, now time.Time) {
	var highest int64
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	next := now.UnixMilli()
	seen := make(map[int64]bool, len(tasks))
	for i := range tasks {
		if tasks[i].ID != 0 && !seen[tasks[i].ID] {
			seen[tasks[i].ID] = true
			continue
		}
		if next <= highest {
			next = highest + 1
		}
		tasks[i].ID = next
		seen[next] = true
		highest = next
		next++
	}
}

func readID(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if id, err := n.Int64(); err == nil && id > 0 {
			return id
		}
		if f, err := n.Float64(); err == nil && f > 0 {
			return int64(f)
		}
		return 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil && id > 0 {
			return id
		}
	}
	return 0
}

func readString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func readBool(raw json.RawMessage) bool {
	var b bool
	if len(raw) == 0 || json.Unmarshal(raw, &b) != nil {
		return false
	}
	return b
}

// readLogs keeps every object in a logs array and skips anything else. It
// reports false when the field is missing, not an array, or has no usable entry.
func readLogs(raw json.RawMessage) ([]LogEntry, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	logs := make([]LogEntry, 0, len(items))
	for i, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			utils.Log("Skipping log entry %d: not an object", i)
			continue
		}
		logs = append(logs, LogEntry{
			Date:   readString(fields["date"]),
			Action: readString(fields["action"]),
			Note:   readString(fields["note"]),
			Image:  readString(fields["image"]),
		})
	}
	return logs, len(logs) > 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
