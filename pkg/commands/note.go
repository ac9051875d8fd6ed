package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"daylog/pkg/attach"
	"daylog/pkg/todo"
)

// HandleNote appends a note, optionally with an image file, to a task's log.
// A date expression in the note moves the deadline.
func HandleNote(ctx context.Context, w io.Writer, store *todo.Store, id int64, note, imagePath string) error {
	var att todo.Attachment
	if imagePath != "" {
		att = attach.FromFile(imagePath)
	}

	before, _ := store.Get(id)
	t, err := store.AppendNote(ctx, id, note, att)
	if err != nil && !errors.Is(err, todo.ErrPersistence) {
		return err
	}

	last := t.Logs[len(t.Logs)-1]
	switch {
	case last.Action == todo.ActionReschedule:
		fmt.Fprintf(w, "Moved deadline of task %d from %s to %s\n", t.ID, orDash(before.DueDate), t.DueDate)
	default:
		fmt.Fprintf(w, "Added note to task %d\n", t.ID)
	}
	if last.Image != "" {
		fmt.Fprintln(w, "Attached photo")
	}
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
