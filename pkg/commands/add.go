package commands

import (
	"errors"
	"fmt"
	"io"

	"daylog/pkg/todo"
)

// HandleAddTask processes the add command. The text may carry a date
// expression such as "내일" or "6월 10일까지", which becomes the deadline.
func HandleAddTask(w io.Writer, store *todo.Store, text string) error {
	t, err := store.Create(text)
	if err != nil && !errors.Is(err, todo.ErrPersistence) {
		return err
	}

	fmt.Fprintf(w, "Added task %d: %s", t.ID, t.Title)
	if t.DueDate != "" {
		fmt.Fprintf(w, " (deadline %s)", t.DueDate)
	}
	fmt.Fprintln(w)
	return err
}
