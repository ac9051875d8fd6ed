package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case NormalMode:
			switch {
			case key.Matches(msg, m.keyMap.ShowHelp):
				m.mode = HelpViewMode

			case key.Matches(msg, m.keyMap.QuitApp):
				return m, tea.Quit

			case key.Matches(msg, m.keyMap.ToggleStatus):
				m.toggleSelected()

			case key.Matches(msg, m.keyMap.AddTask):
				m.err = nil
				m.mode = AddMode
				m.resetInputs()
				return m, nil

			case key.Matches(msg, m.keyMap.AddNote):
				if item, ok := m.selectedTask(); ok {
					m.err = nil
					m.mode = NoteMode
					m.selected = &item
					m.resetInputs()
				}
				return m, nil

			case key.Matches(msg, m.keyMap.DeleteTask):
				if item, ok := m.selectedTask(); ok {
					m.mode = DeleteConfirmMode
					m.selected = &item
				}

			case key.Matches(msg, m.keyMap.ClearCompleted):
				if m.countDone() > 0 {
					m.mode = ClearConfirmMode
				} else {
					m.message = "No completed tasks"
				}

			case key.Matches(msg, m.keyMap.ToggleTimeline):
				m.showTimeline = !m.showTimeline
				m.resizeTable()

			case key.Matches(msg, m.keyMap.Export):
				m.exportWorklog()

			case key.Matches(msg, m.keyMap.Backup):
				m.backupSelected()

			default:
				// Navigation keys go to the table
				m.table, cmd = m.table.Update(msg)
				cmds = append(cmds, cmd)
			}

		case AddMode:
			switch msg.String() {
			case "esc":
				m.mode = NormalMode
				m.err = nil
				m.resetInputs()
				return m, nil

			case "enter":
				m.submitAdd()
				return m, nil
			}

			m.titleInput, cmd = m.titleInput.Update(msg)
			cmds = append(cmds, cmd)

		case NoteMode:
			switch msg.String() {
			case "esc":
				m.mode = NormalMode
				m.err = nil
				m.selected = nil
				m.resetInputs()
				return m, nil

			case "tab", "shift+tab":
				m.focusNextInput()
				return m, nil

			case "enter":
				m.submitNote()
				return m, nil
			}

			// Handle input updates
			switch m.activeInput {
			case 0:
				m.noteInput, cmd = m.noteInput.Update(msg)
			case 1:
				m.imageInput, cmd = m.imageInput.Update(msg)
			}
			cmds = append(cmds, cmd)

		case DeleteConfirmMode:
			switch msg.String() {
			case "y", "Y":
				m.deleteSelected()
				m.mode = NormalMode

			case "n", "N", "esc":
				m.mode = NormalMode
				m.selected = nil
			}

		case ClearConfirmMode:
			switch msg.String() {
			case "y", "Y":
				m.clearCompleted()
				m.mode = NormalMode

			case "n", "N", "esc":
				m.mode = NormalMode
			}

		case HelpViewMode:
			switch {
			case msg.String() == "esc", key.Matches(msg, m.keyMap.ShowHelp):
				m.mode = NormalMode

			case key.Matches(msg, m.keyMap.QuitApp):
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetWidth(msg.Width - 4)
		m.table.SetColumns([]table.Column{{Title: "", Width: max(msg.Width-6, 20)}})
		m.resizeTable()
	}

	return m, tea.Batch(cmds...)
}

// resizeTable leaves room for the timeline panel when it is open.
func (m *Model) resizeTable() {
	if m.height == 0 {
		return
	}
	h := m.height - 6
	if m.showTimeline {
		h = m.height / 2
	}
	m.table.SetHeight(max(h, 3))
}
