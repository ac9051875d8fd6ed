package commands

import (
	"fmt"
	"io"

	"daylog/pkg/database"
)

// HandleDatabaseCommand processes database maintenance commands: purge drops
// the stored collection, info reports its size against the quota.
func HandleDatabaseCommand(w io.Writer, r io.Reader, state *database.StateStore, cmd string, skipConfirm bool) error {
	switch cmd {
	case "info":
		info, err := state.Info()
		if err != nil {
			return err
		}
		if info.Bytes == 0 {
			fmt.Fprintln(w, "Nothing stored yet")
			return nil
		}
		fmt.Fprintf(w, "Stored %d bytes, updated %s\n", info.Bytes, info.Updated.Local().Format("2006-01-02 15:04:05"))
		if info.Quota > 0 {
			fmt.Fprintf(w, "Quota %d bytes (%.1f%% used)\n", info.Quota, info.Usage()*100)
		}
		return nil

	case "purge":
		// Show confirmation unless --yes flag is used
		if !skipConfirm && !confirm(w, r, "Are you sure you want to delete all stored tasks? (y/N): ") {
			fmt.Fprintln(w, "Operation cancelled.")
			return nil
		}
		if err := state.Purge(); err != nil {
			return fmt.Errorf("purging tasks: %w", err)
		}
		fmt.Fprintln(w, "Stored tasks deleted")
		return nil

	default:
		return fmt.Errorf("unknown database command: %s", cmd)
	}
}
