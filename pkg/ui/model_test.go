package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"daylog/pkg/config"
	"daylog/pkg/todo"
)

var refDay = time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)

func newTestModel(t *testing.T, texts ...string) (Model, *todo.Store) {
	t.Helper()
	now := refDay
	store := todo.NewStore(todo.WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))
	for _, text := range texts {
		if _, err := store.Create(text); err != nil {
			t.Fatalf("Create(%q): %v", text, err)
		}
	}
	return NewModel(store, config.Config{}, config.DefaultStyles()), store
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestAddTaskFlow(t *testing.T) {
	m, store := newTestModel(t)

	m = press(m, "a")
	if m.mode != AddMode {
		t.Fatalf("mode = %v, want AddMode", m.mode)
	}
	m = press(m, "내일 회의 준비", "enter")

	if m.mode != NormalMode {
		t.Fatalf("mode = %v after submit", m.mode)
	}
	if store.Len() != 1 {
		t.Fatalf("store has %d tasks", store.Len())
	}
	if got := store.Tasks()[0]; got.Title != "회의 준비" || got.DueDate != "2024-06-02" {
		t.Errorf("task = %+v", got)
	}
	if !strings.Contains(m.View(), "D-1") {
		t.Error("list should show the D-1 badge")
	}
}

func TestAddEmptyKeepsForm(t *testing.T) {
	m, store := newTestModel(t)
	m = press(m, "a", "enter")
	if m.mode != AddMode || m.err == nil || store.Len() != 0 {
		t.Fatalf("mode = %v, err = %v, len = %d", m.mode, m.err, store.Len())
	}
}

func TestToggleAndClear(t *testing.T) {
	m, store := newTestModel(t, "빨래", "설거지")

	m = press(m, " ")
	done := 0
	for _, task := range store.Tasks() {
		if task.Done() {
			done++
		}
	}
	if done != 1 {
		t.Fatalf("done = %d after toggle", done)
	}

	m = press(m, "c")
	if m.mode != ClearConfirmMode {
		t.Fatalf("mode = %v, want ClearConfirmMode", m.mode)
	}
	m = press(m, "y")
	if store.Len() != 1 || m.mode != NormalMode {
		t.Fatalf("len = %d, mode = %v", store.Len(), m.mode)
	}
}

func TestDeleteCancel(t *testing.T) {
	m, store := newTestModel(t, "지울 일")
	m = press(m, "d", "n")
	if store.Len() != 1 {
		t.Fatal("cancelled delete removed the task")
	}
	m = press(m, "d", "y")
	if store.Len() != 0 {
		t.Fatal("confirmed delete kept the task")
	}
}

func TestFormFocusesOneInput(t *testing.T) {
	m, _ := newTestModel(t, "정리")

	m = press(m, "a")
	if !m.titleInput.Focused() || m.noteInput.Focused() || m.imageInput.Focused() {
		t.Fatal("add form should focus only the title input")
	}

	m = press(m, "esc", "n")
	if m.mode != NoteMode {
		t.Fatalf("mode = %v, want NoteMode", m.mode)
	}
	if m.titleInput.Focused() || !m.noteInput.Focused() || m.imageInput.Focused() {
		t.Fatal("note form should focus only the note input")
	}

	m = press(m, "tab")
	if m.noteInput.Focused() || !m.imageInput.Focused() {
		t.Fatal("tab should move focus to the photo input")
	}

	m = press(m, "esc")
	if m.titleInput.Focused() || m.noteInput.Focused() || m.imageInput.Focused() {
		t.Fatal("no input should stay focused in the list")
	}
}

func TestNoteReschedules(t *testing.T) {
	m, store := newTestModel(t, "내일 발표")
	m = press(m, "n", "3일 후로 연기", "enter")

	got := store.Tasks()[0]
	if got.DueDate != "2024-06-04" {
		t.Errorf("DueDate = %q", got.DueDate)
	}
	last := got.Logs[len(got.Logs)-1]
	if last.Action != todo.ActionReschedule {
		t.Errorf("last action = %q", last.Action)
	}
	if !strings.Contains(m.message, "2024-06-04") {
		t.Errorf("message = %q", m.message)
	}
}

func TestTimelineHidesBadgeForDone(t *testing.T) {
	m, _ := newTestModel(t, "오늘 장보기")
	if !strings.Contains(m.renderTask(m.items[0]), "D-Day") {
		t.Fatal("in-progress task should show D-Day")
	}
	m = press(m, " ")
	if strings.Contains(m.renderTask(m.items[0]), "D-Day") {
		t.Error("done task should not show a badge")
	}

	m = press(m, "enter")
	if !m.showTimeline || !strings.Contains(m.View(), "marked as done") {
		t.Error("timeline should list the completion entry")
	}
}
