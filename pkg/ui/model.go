package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"daylog/pkg/config"
	"daylog/pkg/keymaps"
	"daylog/pkg/todo"
)

// InputMode represents the current input mode
type InputMode int

const (
	NormalMode InputMode = iota
	AddMode
	NoteMode
	DeleteConfirmMode
	ClearConfirmMode
	HelpViewMode
)

// Model represents the application state
type Model struct {
	table         table.Model
	help          help.Model
	items         []todo.Task // display order, parallel to the table rows
	store         *todo.Store
	width, height int
	err           error
	message       string

	// Configuration
	config config.Config
	styles config.Styles
	keyMap keymaps.KeyMap

	// View state
	showTimeline bool

	// Form state
	mode        InputMode
	titleInput  textinput.Model
	noteInput   textinput.Model
	imageInput  textinput.Model
	activeInput int

	// Delete/note target
	selected *todo.Task
}

// NewModel creates a new UI model over store with the provided configuration
func NewModel(store *todo.Store, cfg config.Config, styles config.Styles) Model {
	// Create an empty column - the title will be empty to avoid showing a header
	columns := []table.Column{
		{Title: "", Width: 60},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderBottom(false).
		Bold(false).
		Foreground(lipgloss.NoColor{})

	s.Selected = s.Selected.
		Foreground(lipgloss.Color(styles.SelectedTextColor)).
		Background(lipgloss.Color(styles.SelectedBgColor)).
		Bold(true)
	t.SetStyles(s)

	titleInput := textinput.New()
	titleInput.Placeholder = "What to do (e.g. 내일 보고서 제출, 6월 10일까지 견적서)"
	titleInput.Width = 50

	noteInput := textinput.New()
	noteInput.Placeholder = "Note (a date like 3일 후 moves the deadline)"
	noteInput.Width = 50

	imageInput := textinput.New()
	imageInput.Placeholder = "Photo path (optional)"
	imageInput.Width = 50

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.AccentColor)).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.NormalTextColor))
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.FullDesc = h.Styles.ShortDesc

	m := Model{
		table:      t,
		help:       h,
		store:      store,
		config:     cfg,
		styles:     styles,
		keyMap:     keymaps.BuildKeyMap(cfg.KeyMap),
		mode:       NormalMode,
		titleInput: titleInput,
		noteInput:  noteInput,
		imageInput: imageInput,
	}

	m.loadTasks()

	return m
}

// Init initializes the model (required by Bubble Tea Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// resetInputs clears all form inputs and focuses the first input of the
// current mode
func (m *Model) resetInputs() {
	m.titleInput.Reset()
	m.noteInput.Reset()
	m.imageInput.Reset()

	m.activeInput = 0
	m.titleInput.Blur()
	m.noteInput.Blur()
	m.imageInput.Blur()
	switch m.mode {
	case AddMode:
		m.titleInput.Focus()
	case NoteMode:
		m.noteInput.Focus()
	}
}
