package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"daylog/pkg/todo"
	"daylog/pkg/utils"
)

// ErrCapacity is returned when the serialized state exceeds the quota.
var ErrCapacity = errors.New("storage quota exceeded")

// ErrUnreadable is returned by LoadTasks when the stored document cannot be
// decoded. Saves are refused afterwards until Purge.
var ErrUnreadable = errors.New("stored tasks could not be read; run `daylog database purge` to reset them")

// lockTimeout bounds how long a load or save waits for another process.
const lockTimeout = 5 * time.Second

// StateStore persists the task collection as a single JSON document.
type StateStore struct {
	db     *sql.DB
	driver string
	quota  int64
	lock   *flock.Flock

	unreadable bool
}

// NewStateStore wraps an open database. lockPath may be empty to skip file
// locking, which is the case for PostgreSQL. A quota <= 0 disables the limit.
func NewStateStore(db *sql.DB, driver, lockPath string, quota int64) *StateStore {
	s := &StateStore{db: db, driver: driver, quota: quota}
	if lockPath != "" {
		s.lock = flock.New(lockPath)
	}
	return s
}

// LockPathFor returns the lock file used alongside a SQLite database.
func LockPathFor(driver, dsn string) string {
	if driver == DriverPostgres || dsn == "" || dsn == ":memory:" {
		return ""
	}
	path, err := ExpandPath(dsn)
	if err != nil {
		return ""
	}
	return path + ".lock"
}

// Load returns the stored document, or nil when nothing has been saved yet.
func (s *StateStore) Load() ([]byte, error) {
	unlock, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()

	var value string
	err = s.db.QueryRow(s.rebind("SELECT value FROM state WHERE key = ?"), StateKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		utils.Log("No stored state yet")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	utils.Log("Loaded %d bytes of state", len(value))
	return []byte(value), nil
}

// Save replaces the stored document.
func (s *StateStore) Save(data []byte) error {
	if s.unreadable {
		return ErrUnreadable
	}
	if s.quota > 0 && int64(len(data)) > s.quota {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrCapacity, len(data), s.quota)
	}

	unlock, err := s.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	_, err = s.db.Exec(s.rebind(
		`INSERT INTO state (key, value, updated) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated = CURRENT_TIMESTAMP`),
		StateKey, string(data),
	)
	if err != nil {
		return err
	}

	utils.Log("Saved %d bytes of state", len(data))
	return nil
}

// LoadTasks reads and upgrades the stored collection.
func (s *StateStore) LoadTasks(now time.Time) ([]todo.Task, error) {
	data, err := s.Load()
	if err != nil {
		return nil, err
	}
	tasks, err := todo.Decode(data, now)
	if err != nil {
		utils.Log("Stored state is unreadable, refusing to overwrite it: %v", err)
		s.unreadable = true
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	s.unreadable = false
	return tasks, nil
}

// SaveTasks serializes and stores the collection. It has the signature of a
// todo.Store change hook.
func (s *StateStore) SaveTasks(tasks []todo.Task) error {
	data, err := todo.Encode(tasks)
	if err != nil {
		return err
	}
	return s.Save(data)
}

// Info reports the size and age of the stored document.
func (s *StateStore) Info() (StateInfo, error) {
	size := "LENGTH(CAST(value AS BLOB))"
	if s.driver == DriverPostgres {
		size = "OCTET_LENGTH(value)"
	}

	info := StateInfo{Key: StateKey, Quota: s.quota}
	err := s.db.QueryRow(
		s.rebind("SELECT "+size+", updated FROM state WHERE key = ?"), StateKey,
	).Scan(&info.Bytes, &info.Updated)
	if errors.Is(err, sql.ErrNoRows) {
		return info, nil
	}
	return info, err
}

// Purge deletes the stored document.
func (s *StateStore) Purge() error {
	unlock, err := s.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	if _, err = s.db.Exec(s.rebind("DELETE FROM state WHERE key = ?"), StateKey); err != nil {
		return err
	}
	s.unreadable = false
	utils.Log("Purged stored state")
	return nil
}

func (s *StateStore) acquire() (func(), error) {
	if s.lock == nil {
		return func() {}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := s.lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", s.lock.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("lock %s: held by another process", s.lock.Path())
	}
	return func() { _ = s.lock.Unlock() }, nil
}

// rebind rewrites ? placeholders as $n for PostgreSQL.
func (s *StateStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
