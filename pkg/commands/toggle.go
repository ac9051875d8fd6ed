package commands

import (
	"errors"
	"fmt"
	"io"

	"daylog/pkg/todo"
)

// HandleToggle flips a task between in progress and done.
func HandleToggle(w io.Writer, store *todo.Store, id int64) error {
	t, err := store.ToggleStatus(id)
	if err != nil && !errors.Is(err, todo.ErrPersistence) {
		return err
	}

	if t.Done() {
		fmt.Fprintf(w, "Completed task %d: %s\n", t.ID, t.Title)
	} else {
		fmt.Fprintf(w, "Reopened task %d: %s\n", t.ID, t.Title)
	}
	return err
}
