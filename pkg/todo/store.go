package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"daylog/pkg/dateparse"
	"daylog/pkg/utils"
)

// Attachment produces the opaque token stored on a log entry, e.g. a data URI.
// Token may block; it runs before the store is touched.
type Attachment interface {
	Token(ctx context.Context) (string, error)
}

// AttachmentFunc adapts a function to Attachment.
type AttachmentFunc func(ctx context.Context) (string, error)

func (f AttachmentFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// MergeResult reports the outcome of a merge import.
type MergeResult struct {
	Added    int
	Updated  int
	Rejected []error
}

// Store owns the live task collection. It is not safe for concurrent use.
type Store struct {
	tasks    []Task
	now      func() time.Time
	onChange func([]Task) error
	dirty    bool
	lastID   int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for ids, timestamps and date parsing.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithTasks seeds the store, typically with the output of Decode.
func WithTasks(tasks []Task) Option {
	return func(s *Store) { s.tasks = cloneAll(tasks) }
}

// WithOnChange registers the hook called with a snapshot after every mutation.
func WithOnChange(fn func([]Task) error) Option {
	return func(s *Store) { s.onChange = fn }
}

// NewStore builds a store. Tasks are kept most-recent-first.
func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	for _, t := range s.tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return s
}

// Tasks returns a copy of the collection in storage order.
func (s *Store) Tasks() []Task {
	return cloneAll(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id int64) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Dirty reports whether there are mutations the change hook has not accepted.
func (s *Store) Dirty() bool {
	return s.dirty
}

// MarkClean clears the dirty flag after the caller persisted Tasks() itself.
func (s *Store) MarkClean() {
	s.dirty = false
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Create parses rawText for a due date and inserts a new in-progress task at
// the front of the collection.
func (s *Store) Create(rawText string) (Task, error) {
	raw := strings.TrimSpace(rawText)
	if raw == "" {
		return Task{}, &ValidationError{Field: "title", Reason: "enter something to do"}
	}

	now := s.now()
	parsed := dateparse.Parse(raw, now)
	title := parsed.Title
	if title == "" {
		title = raw
	}

	note := "new task"
	if parsed.Found() {
		note = "deadline set: " + parsed.DueDate
	}

	t := Task{
		ID:      s.nextID(now),
		Title:   title,
		Status:  StatusInProgress,
		DueDate: parsed.DueDate,
		Logs: []LogEntry{{
			Date:   stamp(now),
			Action: ActionCreate,
			Note:   note,
		}},
	}
	s.tasks = append([]Task{t}, s.tasks...)

	utils.Log("Created task %d %q (due %q)", t.ID, t.Title, t.DueDate)
	return t.Clone(), s.commit()
}

// ToggleStatus flips a task between in progress and done and logs the change.
func (s *Store) ToggleStatus(id int64) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("toggle %d: %w", id, ErrNotFound)
	}

	t := &s.tasks[i]
	if t.Done() {
		t.Status = StatusInProgress
		s.appendLog(t, ActionReopen, "reopened", "")
	} else {
		t.Status = StatusDone
		s.appendLog(t, ActionComplete, "marked as done", "")
	}

	utils.Log("Toggled task %d to %s", t.ID, t.Status)
	return t.Clone(), s.commit()
}

// AppendNote adds a note and/or attachment to a task's log. A date expression
// in the note moves the due date and is stripped from the stored text.
// The attachment is resolved first; if that fails nothing is appended.
func (s *Store) AppendNote(ctx context.Context, id int64, note string, att Attachment) (Task, error) {
	note = strings.TrimSpace(note)
	if note == "" && att == nil {
		return Task{}, &ValidationError{Field: "note", Reason: "enter a note or attach a photo"}
	}
	if s.index(id) < 0 {
		return Task{}, fmt.Errorf("note %d: %w", id, ErrNotFound)
	}

	var image string
	if att != nil {
		token, err := att.Token(ctx)
		if err != nil {
			return Task{}, &AttachmentError{Err: err}
		}
		if token == "" {
			return Task{}, &AttachmentError{Err: errors.New("empty attachment token")}
		}
		image = token
	}

	i := s.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("note %d: %w", id, ErrNotFound)
	}
	t := &s.tasks[i]

	action := ActionUpdate
	if note != "" {
		parsed := dateparse.Parse(note, s.now())
		if parsed.Found() {
			if t.DueDate != parsed.DueDate {
				utils.Log("Rescheduled task %d from %q to %q", t.ID, t.DueDate, parsed.DueDate)
				t.DueDate = parsed.DueDate
				action = ActionReschedule
			}
			if parsed.Title != "" {
				note = parsed.Title
			}
		}
	}
	s.appendLog(t, action, note, image)

	utils.Log("Appended %s entry to task %d", action, t.ID)
	return t.Clone(), s.commit()
}

// Delete removes a task.
func (s *Store) Delete(id int64) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)

	utils.Log("Deleted task %d", id)
	return s.commit()
}

// ClearCompleted removes every done task and returns how many were removed.
func (s *Store) ClearCompleted() (int, error) {
	kept := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Done() {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	s.tasks = kept

	utils.Log("Cleared %d completed task(s)", removed)
	return removed, s.commit()
}

// MergeImport merges incoming tasks by id. A matching task is replaced
// wholesale, including its logs; anything else is inserted at the front.
// Records without an id or title are skipped and reported in Rejected.
// Logs are stored as given; use Import or NormalizeRecord to upgrade them.
func (s *Store) MergeImport(incoming []Task) (MergeResult, error) {
	var res MergeResult
	for n, in := range incoming {
		if in.ID == 0 || strings.TrimSpace(in.Title) == "" {
			res.Rejected = append(res.Rejected, &MalformedRecordError{Index: n, Reason: "missing id or title"})
			continue
		}

		if i := s.index(in.ID); i >= 0 {
			s.tasks[i] = in.Clone()
			res.Updated++
		} else {
			s.tasks = append([]Task{in.Clone()}, s.tasks...)
			res.Added++
		}
		if in.ID > s.lastID {
			s.lastID = in.ID
		}
	}

	utils.Log("Merge import: %d added, %d updated, %d rejected", res.Added, res.Updated, len(res.Rejected))
	if res.Added+res.Updated == 0 {
		return res, nil
	}
	return res, s.commit()
}

func (s *Store) appendLog(t *Task, action, note, image string) {
	t.Logs = append(t.Logs, LogEntry{
		Date:   stamp(s.now()),
		Action: action,
		Note:   note,
		Image:  image,
	})
}

func (s *Store) commit() error {
	s.dirty = true
	if s.onChange == nil {
		return nil
	}
	if err := s.onChange(s.Tasks()); err != nil {
		utils.Log("Persist failed: %v", err)
		return &PersistenceError{Err: err}
	}
	s.dirty = false
	return nil
}

// nextID derives an id from the creation time, bumped past the last one issued.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) index(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
