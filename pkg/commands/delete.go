package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"daylog/pkg/todo"
)

// HandleDelete removes a task after confirmation unless skipConfirm is set.
func HandleDelete(w io.Writer, r io.Reader, store *todo.Store, id int64, skipConfirm bool) error {
	t, ok := store.Get(id)
	if !ok {
		return fmt.Errorf("delete %d: %w", id, todo.ErrNotFound)
	}

	if !skipConfirm && !confirm(w, r, fmt.Sprintf("Delete %q? (y/N): ", t.Title)) {
		fmt.Fprintln(w, "Operation cancelled.")
		return nil
	}

	err := store.Delete(id)
	if err != nil && !errors.Is(err, todo.ErrPersistence) {
		return err
	}
	fmt.Fprintf(w, "Deleted task %d\n", id)
	return err
}

// HandleClearCompleted removes every done task after confirmation.
func HandleClearCompleted(w io.Writer, r io.Reader, store *todo.Store, skipConfirm bool) error {
	done := 0
	for _, t := range store.Tasks() {
		if t.Done() {
			done++
		}
	}
	if done == 0 {
		fmt.Fprintln(w, "No completed tasks")
		return nil
	}

	if !skipConfirm && !confirm(w, r, fmt.Sprintf("Remove %d completed task(s)? (y/N): ", done)) {
		fmt.Fprintln(w, "Operation cancelled.")
		return nil
	}

	removed, err := store.ClearCompleted()
	if err != nil && !errors.Is(err, todo.ErrPersistence) {
		return err
	}
	fmt.Fprintf(w, "Successfully deleted %d task(s)\n", removed)
	return err
}

// confirm asks a yes/no question and reads one line of the answer.
func confirm(w io.Writer, r io.Reader, prompt string) bool {
	fmt.Fprint(w, prompt)
	line, _ := bufio.NewReader(r).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
