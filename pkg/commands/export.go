package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"daylog/pkg/todo"
	"daylog/pkg/utils"
)

// Export file types.
const (
	TypeCSV  = "csv"
	TypeJSON = "json"
	TypeYAML = "yaml"
)

// DefaultExportName returns worklog_YYYY-MM-DD with the type's extension.
func DefaultExportName(exportType string, now time.Time) string {
	return fmt.Sprintf("worklog_%s.%s", now.Format("2006-01-02"), exportType)
}

// HandleExportCommand writes the collection to filename. The csv type is the
// flattened work log; json and yaml write the tasks themselves. A filename of
// "-" writes to w.
func HandleExportCommand(w io.Writer, store *todo.Store, filename, exportType string) error {
	if exportType == "" {
		exportType = TypeCSV
	}
	if store.Len() == 0 {
		return &todo.ValidationError{Field: "tasks", Reason: "nothing to export"}
	}
	tasks := store.Tasks()

	var content []byte
	switch exportType {
	case TypeCSV:
		content = encodeCSV(tasks)
	case TypeJSON:
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling tasks to JSON: %w", err)
		}
		content = data
	case TypeYAML:
		data, err := yaml.Marshal(tasks)
		if err != nil {
			return fmt.Errorf("marshaling tasks to YAML: %w", err)
		}
		content = data
	default:
		return &todo.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown export type %q", exportType)}
	}

	if filename == "-" {
		_, err := w.Write(content)
		return err
	}
	if filename == "" {
		filename = DefaultExportName(exportType, store.Now())
	}
	if err := writeFile(filename, content); err != nil {
		return err
	}

	utils.Log("Exported %d task(s) as %s to %s", len(tasks), exportType, filename)
	fmt.Fprintf(w, "Successfully exported %d task(s) to %s\n", len(tasks), filename)
	return nil
}

func encodeCSV(tasks []todo.Task) []byte {
	var buf bytes.Buffer
	// Writing to memory cannot fail.
	_ = todo.WriteCSV(&buf, todo.ToRows(tasks))
	return buf.Bytes()
}

// writeFile creates the parent directory and writes content.
func writeFile(filename string, content []byte) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}
	if err := os.WriteFile(filename, content, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
