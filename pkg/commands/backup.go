package commands

import (
	"fmt"
	"io"
	"regexp"
	"time"

	"daylog/pkg/todo"
	"daylog/pkg/utils"
)

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}_-]`)

// DefaultBackupName returns todos_backup_YYYY-MM-DD.json.
func DefaultBackupName(now time.Time) string {
	return fmt.Sprintf("todos_backup_%s.json", now.Format("2006-01-02"))
}

// TaskBackupName returns todo_<title prefix>_YYYY-MM-DD.json for a single task.
// The prefix is the first ten characters of the title with anything unsafe in
// a file name replaced by an underscore.
func TaskBackupName(title string, now time.Time) string {
	prefix := []rune(title)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	safe := unsafeFileChars.ReplaceAllString(string(prefix), "_")
	return fmt.Sprintf("todo_%s_%s.json", safe, now.Format("2006-01-02"))
}

// HandleBackup writes a backup that import can read back. id 0 backs up the
// whole collection. A filename of "-" writes to w.
func HandleBackup(w io.Writer, store *todo.Store, id int64, filename string) error {
	var (
		data []byte
		err  error
		name string
	)
	if id == 0 {
		data, err = store.BackupAll()
		name = DefaultBackupName(store.Now())
	} else {
		data, err = store.Backup(id)
		if err == nil {
			t, _ := store.Get(id)
			name = TaskBackupName(t.Title, store.Now())
		}
	}
	if err != nil {
		return err
	}

	if filename == "-" {
		_, err := w.Write(append(data, '\n'))
		return err
	}
	if filename == "" {
		filename = name
	}
	if err := writeFile(filename, data); err != nil {
		return err
	}

	utils.Log("Wrote backup %s (%d bytes)", filename, len(data))
	fmt.Fprintf(w, "Backup written to %s\n", filename)
	return nil
}
