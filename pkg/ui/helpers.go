package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"daylog/pkg/attach"
	"daylog/pkg/commands"
	"daylog/pkg/deadline"
	"daylog/pkg/todo"
	"daylog/pkg/utils"
)

// loadTasks recomputes the display order and rebuilds the table rows.
func (m *Model) loadTasks() {
	today := m.store.Now()
	m.items = todo.Order(m.store.Tasks(), today)

	rows := make([]table.Row, 0, len(m.items))
	for _, item := range m.items {
		rows = append(rows, table.Row{m.renderTask(item)})
	}
	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// renderTask formats one list line: checkbox, D-Day badge and title.
// Done tasks get no badge.
func (m Model) renderTask(t todo.Task) string {
	status := "[ ]"
	if t.Done() {
		status = "[x]"
	}

	parts := []string{status}
	if !t.Done() {
		if label := deadline.Classify(t.DueDate, m.store.Now()); label != nil {
			parts = append(parts, m.badgeStyle(label.Urgency).Render(label.Text))
		}
	}
	parts = append(parts, t.Title)
	if n := len(t.Logs); n > 1 {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.BorderColor)).Render(fmt.Sprintf("(%d)", n)))
	}
	return strings.Join(parts, " ")
}

func (m Model) badgeStyle(u deadline.Urgency) lipgloss.Style {
	color := m.styles.NormalColor
	switch u {
	case deadline.Urgent:
		color = m.styles.UrgentColor
	case deadline.Warning:
		color = m.styles.WarningColor
	case deadline.Past:
		color = m.styles.PastColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// selectedTask returns the task under the cursor.
func (m Model) selectedTask() (todo.Task, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return todo.Task{}, false
	}
	return m.items[idx], true
}

// focusNextInput cycles between the note and photo inputs
func (m *Model) focusNextInput() {
	m.activeInput = (m.activeInput + 1) % 2
	switch m.activeInput {
	case 0:
		m.noteInput.Focus()
		m.imageInput.Blur()
	case 1:
		m.noteInput.Blur()
		m.imageInput.Focus()
	}
}

// setResult records the outcome of a store call. Persistence failures keep
// the in-memory change, so the list is refreshed either way.
func (m *Model) setResult(msg string, err error) {
	m.err = err
	if err == nil || errors.Is(err, todo.ErrPersistence) {
		m.message = msg
	} else {
		m.message = ""
	}
	if err != nil {
		utils.Log("UI action failed: %v", err)
	}
	m.loadTasks()
}

// submitAdd creates a task from the title input
func (m *Model) submitAdd() {
	t, err := m.store.Create(m.titleInput.Value())
	if errors.Is(err, todo.ErrValidation) {
		m.err = err
		return
	}

	msg := "Added " + t.Title
	if t.DueDate != "" {
		msg += " (deadline " + t.DueDate + ")"
	}
	m.setResult(msg, err)
	m.mode = NormalMode
	m.resetInputs()
}

// submitNote appends the note and optional photo to the selected task
func (m *Model) submitNote() {
	if m.selected == nil {
		m.mode = NormalMode
		return
	}

	var att todo.Attachment
	if path := strings.TrimSpace(m.imageInput.Value()); path != "" {
		att = attach.FromFile(path)
	}

	t, err := m.store.AppendNote(context.Background(), m.selected.ID, m.noteInput.Value(), att)
	if errors.Is(err, todo.ErrValidation) || errors.Is(err, todo.ErrAttachment) {
		m.err = err
		return
	}

	msg := "Note added"
	if len(t.Logs) > 0 && t.Logs[len(t.Logs)-1].Action == todo.ActionReschedule {
		msg = "Deadline moved to " + t.DueDate
	}
	m.setResult(msg, err)
	m.mode = NormalMode
	m.selected = nil
	m.resetInputs()
}

// toggleSelected flips the status of the task under the cursor
func (m *Model) toggleSelected() {
	item, ok := m.selectedTask()
	if !ok {
		return
	}
	t, err := m.store.ToggleStatus(item.ID)
	if t.Done() {
		m.setResult("Completed "+t.Title, err)
	} else {
		m.setResult("Reopened "+t.Title, err)
	}
}

func (m *Model) deleteSelected() {
	if m.selected == nil {
		return
	}
	utils.Log("Deleting task ID: %d", m.selected.ID)
	m.setResult("Deleted "+m.selected.Title, m.store.Delete(m.selected.ID))
	m.selected = nil
}

func (m *Model) clearCompleted() {
	n, err := m.store.ClearCompleted()
	m.setResult(fmt.Sprintf("Cleared %d completed task(s)", n), err)
}

// exportWorklog writes the CSV work log to the default file name.
func (m *Model) exportWorklog() {
	name := commands.DefaultExportName(commands.TypeCSV, m.store.Now())
	err := commands.HandleExportCommand(io.Discard, m.store, name, commands.TypeCSV)
	m.setResult("Exported to "+name, err)
}

// backupSelected writes the task under the cursor to its own backup file.
func (m *Model) backupSelected() {
	item, ok := m.selectedTask()
	if !ok {
		return
	}
	name := commands.TaskBackupName(item.Title, m.store.Now())
	err := commands.HandleBackup(io.Discard, m.store, item.ID, name)
	m.setResult("Backed up to "+name, err)
}

// countDone returns the number of completed tasks in the list
func (m Model) countDone() int {
	n := 0
	for _, t := range m.items {
		if t.Done() {
			n++
		}
	}
	return n
}
