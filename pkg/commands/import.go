package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"daylog/pkg/todo"
)

// HandleImportCommand merges a backup file into the store. Tasks with a
// known id replace the stored task; the rest are added.
func HandleImportCommand(w io.Writer, store *todo.Store, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	res, err := store.Import(content)
	if err != nil && !errors.Is(err, todo.ErrPersistence) {
		return err
	}

	for _, rej := range res.Rejected {
		fmt.Fprintf(w, "Skipped: %v\n", rej)
	}
	fmt.Fprintf(w, "Imported from %s: added %d, updated %d\n", filename, res.Added, res.Updated)
	return err
}
