package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI based on the current mode
func (m Model) View() string {
	var sb strings.Builder

	switch m.mode {
	case NormalMode:
		sb.WriteString(m.titleBar(" daylog "))
		sb.WriteString("\n\n")

		if len(m.items) == 0 {
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.NormalTextColor)).
				Render("Nothing to do. Press a to add a task."))
			sb.WriteString("\n")
		} else {
			sb.WriteString(m.table.View())
			sb.WriteString("\n")
		}

		if m.showTimeline {
			sb.WriteString(m.renderTimeline())
			sb.WriteString("\n")
		}

		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.NormalTextColor)).Render(m.summary()))
		sb.WriteString("\n")

	case AddMode:
		sb.WriteString(m.titleBar(" Add New Task "))
		sb.WriteString("\n\n")
		sb.WriteString(m.titleInput.View())

	case NoteMode:
		sb.WriteString(m.titleBar(" Add Note "))
		sb.WriteString("\n\n")
		if m.selected != nil {
			sb.WriteString(fmt.Sprintf("Task: %s\n\n", m.selected.Title))
		}
		sb.WriteString("Note:\n")
		sb.WriteString(m.noteInput.View())
		sb.WriteString("\n\n")
		sb.WriteString("Photo:\n")
		sb.WriteString(m.imageInput.View())

	case DeleteConfirmMode:
		sb.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
			Background(lipgloss.Color(m.styles.ErrorColor)).
			Padding(0, 1).
			Render(" Delete Task "))
		sb.WriteString("\n\n")

		if m.selected != nil {
			sb.WriteString("Are you sure you want to delete this task?\n\n")
			sb.WriteString(fmt.Sprintf("Title: %s\n", m.selected.Title))
			sb.WriteString(fmt.Sprintf("Log entries: %d\n", len(m.selected.Logs)))
			sb.WriteString("\n")
			sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))
		}

	case ClearConfirmMode:
		sb.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
			Background(lipgloss.Color(m.styles.ErrorColor)).
			Padding(0, 1).
			Render(" Clear Completed "))
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf("Remove %d completed task(s)?\n\n", m.countDone()))
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))

	case HelpViewMode:
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Available Commands"))
		sb.WriteString("\n\n")
		h := m.help
		h.ShowAll = true
		sb.WriteString(h.View(m.keyMap))
		sb.WriteString("\n\n")
		sb.WriteString("Dates in task text: 오늘, 내일, 모레, N일 후, M월 D일(까지)\n")
	}

	// Error message if any
	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.ErrorColor)).Render(fmt.Sprintf("Error: %v", m.err)))
	} else if m.message != "" && m.mode == NormalMode {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.AccentColor)).Render(m.message))
	}

	// Add help status bar at the bottom
	sb.WriteString("\n")
	sb.WriteString(m.helpBar())

	return sb.String()
}

func (m Model) titleBar(text string) string {
	bar := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(m.styles.AccentColor)).
		Padding(0, 1).
		Render(text)
	if m.store.Dirty() {
		bar += lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.ErrorColor)).Render(" unsaved")
	}
	return bar
}

// summary counts tasks by state for the line under the list.
func (m Model) summary() string {
	done := m.countDone()
	return fmt.Sprintf("%d task(s), %d in progress, %d done", len(m.items), len(m.items)-done, done)
}

// renderTimeline lists the log of the selected task, oldest first.
func (m Model) renderTimeline() string {
	item, ok := m.selectedTask()
	if !ok {
		return ""
	}

	dateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.BorderColor))
	actionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.AccentColor)).Bold(true)

	var sb strings.Builder
	due := "no deadline"
	if item.DueDate != "" {
		due = "deadline " + item.DueDate
	}
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(item.Title))
	sb.WriteString(dateStyle.Render(" · " + due))
	sb.WriteString("\n")

	for _, l := range item.Logs {
		line := fmt.Sprintf("%s %s %s", dateStyle.Render(l.Date), actionStyle.Render(l.Action), l.Note)
		if l.Image != "" {
			line += " (photo)"
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.styles.BorderColor)).
		Padding(0, 1).
		Render(strings.TrimRight(sb.String(), "\n"))
}

// helpBar renders a status bar with available actions
func (m Model) helpBar() string {
	var actions []string

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor))
	separator := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.BorderColor)).
		Render(" • ")

	addAction := func(k, desc string) {
		actions = append(actions, fmt.Sprintf("%s %s", keyStyle.Render(k), descStyle.Render(desc)))
	}

	switch m.mode {
	case NormalMode:
		return m.help.View(m.keyMap)

	case AddMode:
		addAction("enter", "save")
		addAction("esc", "cancel")

	case NoteMode:
		addAction("tab", "next field")
		addAction("enter", "save")
		addAction("esc", "cancel")

	case DeleteConfirmMode, ClearConfirmMode:
		addAction("y", "confirm")
		addAction("n", "cancel")

	case HelpViewMode:
		addAction(m.keyMap.ShowHelp.Help().Key+"/esc", "back")
		addAction(m.keyMap.QuitApp.Help().Key, "quit")
	}

	return strings.Join(actions, separator)
}
