package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"daylog/pkg/database"
	"daylog/pkg/todo"
)

var refDay = time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)

func newStore(t *testing.T) *todo.Store {
	t.Helper()
	now := refDay
	return todo.NewStore(todo.WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))
}

func mustCreate(t *testing.T, store *todo.Store, text string) todo.Task {
	t.Helper()
	task, err := store.Create(text)
	if err != nil {
		t.Fatalf("Create(%q): %v", text, err)
	}
	return task
}

func TestHandleAddTask(t *testing.T) {
	store := newStore(t)
	var out bytes.Buffer

	if err := HandleAddTask(&out, store, "내일 보고서 제출"); err != nil {
		t.Fatalf("HandleAddTask: %v", err)
	}
	if !strings.Contains(out.String(), "보고서 제출 (deadline 2024-06-02)") {
		t.Errorf("output = %q", out.String())
	}

	err := HandleAddTask(&out, store, "   ")
	if !errors.Is(err, todo.ErrValidation) {
		t.Errorf("blank text: got %v", err)
	}
}

func TestHandleList(t *testing.T) {
	store := newStore(t)
	mustCreate(t, store, "메모 정리")
	mustCreate(t, store, "3일 후 발표 준비")
	done := mustCreate(t, store, "오늘 장보기")
	if _, err := store.ToggleStatus(done.ID); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := HandleList(&out, store, ListOptions{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "D-3") || !strings.Contains(lines[0], "발표 준비") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "[x]") || strings.Contains(lines[2], "D-Day") {
		t.Errorf("done task should be last without a badge: %q", lines[2])
	}

	out.Reset()
	HandleList(&out, store, ListOptions{Pending: true, Timeline: true})
	if strings.Contains(out.String(), "장보기") {
		t.Error("pending list shows a done task")
	}
	if !strings.Contains(out.String(), "deadline set: 2024-06-04") {
		t.Errorf("timeline missing: %q", out.String())
	}
}

func TestHandleListEmpty(t *testing.T) {
	var out bytes.Buffer
	HandleList(&out, newStore(t), ListOptions{})
	if strings.TrimSpace(out.String()) != "No tasks" {
		t.Errorf("output = %q", out.String())
	}
}

func TestHandleToggle(t *testing.T) {
	store := newStore(t)
	task := mustCreate(t, store, "빨래")
	var out bytes.Buffer

	if err := HandleToggle(&out, store, task.ID); err != nil {
		t.Fatal(err)
	}
	if err := HandleToggle(&out, store, task.ID); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); !strings.Contains(got, "Completed task") || !strings.Contains(got, "Reopened task") {
		t.Errorf("output = %q", got)
	}
	if err := HandleToggle(&out, store, 42); !errors.Is(err, todo.ErrNotFound) {
		t.Errorf("missing id: got %v", err)
	}
}

func TestHandleNoteReschedule(t *testing.T) {
	store := newStore(t)
	task := mustCreate(t, store, "내일 회의")
	var out bytes.Buffer

	if err := HandleNote(context.Background(), &out, store, task.ID, "모레로 연기", ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "from 2024-06-02 to 2024-06-03") {
		t.Errorf("output = %q", out.String())
	}
}

func TestHandleNoteBadImage(t *testing.T) {
	store := newStore(t)
	task := mustCreate(t, store, "영수증 정리")
	path := filepath.Join(t.TempDir(), "notes.txt")
	os.WriteFile(path, []byte("plain text"), 0644)

	err := HandleNote(context.Background(), &bytes.Buffer{}, store, task.ID, "사진", path)
	if !errors.Is(err, todo.ErrAttachment) {
		t.Fatalf("got %v", err)
	}
	if got, _ := store.Get(task.ID); len(got.Logs) != 1 {
		t.Error("failed attachment must not append a log entry")
	}
}

func TestHandleDeleteConfirm(t *testing.T) {
	store := newStore(t)
	task := mustCreate(t, store, "삭제할 일")
	var out bytes.Buffer

	if err := HandleDelete(&out, strings.NewReader("n\n"), store, task.ID, false); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 1 {
		t.Fatal("declined delete removed the task")
	}

	if err := HandleDelete(&out, strings.NewReader("y\n"), store, task.ID, false); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 0 {
		t.Fatal("confirmed delete kept the task")
	}
	if err := HandleDelete(&out, nil, store, task.ID, true); !errors.Is(err, todo.ErrNotFound) {
		t.Errorf("missing id: got %v", err)
	}
}

func TestHandleClearCompleted(t *testing.T) {
	store := newStore(t)
	a := mustCreate(t, store, "하나")
	mustCreate(t, store, "둘")
	store.ToggleStatus(a.ID)

	var out bytes.Buffer
	if err := HandleClearCompleted(&out, nil, store, true); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 1 || !strings.Contains(out.String(), "deleted 1 task") {
		t.Errorf("len = %d, output = %q", store.Len(), out.String())
	}

	out.Reset()
	HandleClearCompleted(&out, nil, store, true)
	if !strings.Contains(out.String(), "No completed tasks") {
		t.Errorf("output = %q", out.String())
	}
}

func TestHandleExportCSV(t *testing.T) {
	store := newStore(t)
	mustCreate(t, store, "6월 5일까지 견적서, 초안")
	path := filepath.Join(t.TempDir(), "out", "log.csv")

	if err := HandleExportCommand(&bytes.Buffer{}, store, path, ""); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "\ufeffdate,D-Day,title,status,log-date,content\n") {
		t.Errorf("header = %q", text)
	}
	if !strings.Contains(text, "deadline:2024-06-05,견적서  초안,in_progress") {
		t.Errorf("row = %q", text)
	}
}

func TestHandleExportYAML(t *testing.T) {
	store := newStore(t)
	mustCreate(t, store, "내일 운동")
	var out bytes.Buffer

	if err := HandleExportCommand(&out, store, "-", TypeYAML); err != nil {
		t.Fatal(err)
	}
	var tasks []todo.Task
	if err := yaml.Unmarshal(out.Bytes(), &tasks); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if len(tasks) != 1 || tasks[0].DueDate != "2024-06-02" || tasks[0].Title != "운동" {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestHandleExportGuards(t *testing.T) {
	store := newStore(t)
	if err := HandleExportCommand(&bytes.Buffer{}, store, "-", TypeCSV); !errors.Is(err, todo.ErrValidation) {
		t.Errorf("empty store: got %v", err)
	}
	mustCreate(t, store, "할일")
	if err := HandleExportCommand(&bytes.Buffer{}, store, "-", "xml"); !errors.Is(err, todo.ErrValidation) {
		t.Errorf("unknown type: got %v", err)
	}
}

func TestBackupAndImport(t *testing.T) {
	src := newStore(t)
	task := mustCreate(t, src, "모레 병원 예약")
	dir := t.TempDir()
	path := filepath.Join(dir, "one.json")

	if err := HandleBackup(&bytes.Buffer{}, src, task.ID, path); err != nil {
		t.Fatal(err)
	}

	dst := newStore(t)
	var out bytes.Buffer
	if err := HandleImportCommand(&out, dst, path); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "added 1, updated 0") {
		t.Errorf("report = %q", out.String())
	}
	got, ok := dst.Get(task.ID)
	if !ok || got.DueDate != "2024-06-03" {
		t.Errorf("imported task = %+v", got)
	}

	out.Reset()
	HandleImportCommand(&out, dst, path)
	if !strings.Contains(out.String(), "added 0, updated 1") {
		t.Errorf("second import report = %q", out.String())
	}
}

func TestImportReportsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.json")
	os.WriteFile(path, []byte(`[{"id": 7, "title": "ok"}, {"title": "no id"}]`), 0644)

	store := newStore(t)
	var out bytes.Buffer
	if err := HandleImportCommand(&out, store, path); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Skipped:") || !strings.Contains(out.String(), "added 1") {
		t.Errorf("report = %q", out.String())
	}
}

func TestBackupAllEmpty(t *testing.T) {
	err := HandleBackup(&bytes.Buffer{}, newStore(t), 0, "-")
	if !errors.Is(err, todo.ErrValidation) {
		t.Errorf("got %v", err)
	}
}

func TestBackupNames(t *testing.T) {
	if got := DefaultBackupName(refDay); got != "todos_backup_2024-06-01.json" {
		t.Errorf("DefaultBackupName = %q", got)
	}
	if got := TaskBackupName("보고서/최종 버전 검토하기", refDay); got != "todo_보고서_최종_버전__2024-06-01.json" {
		t.Errorf("TaskBackupName = %q", got)
	}
	if got := DefaultExportName(TypeCSV, refDay); got != "worklog_2024-06-01.csv" {
		t.Errorf("DefaultExportName = %q", got)
	}
}

func TestHandleDatabaseCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daylog.db")
	db, err := database.ConnectDB(database.DriverSQLite, path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if err := database.EnsureSchema(db); err != nil {
		t.Fatal(err)
	}
	state := database.NewStateStore(db, database.DriverSQLite, "", 1<<20)
	if err := state.Save([]byte(`[]`)); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := HandleDatabaseCommand(&out, nil, state, "info", false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Stored 2 bytes") {
		t.Errorf("info = %q", out.String())
	}

	if err := HandleDatabaseCommand(&out, strings.NewReader("yes\n"), state, "purge", false); err != nil {
		t.Fatal(err)
	}
	if data, _ := state.Load(); data != nil {
		t.Error("purge left data behind")
	}
	if err := HandleDatabaseCommand(&out, nil, state, "vacuum", true); err == nil {
		t.Error("unknown command should fail")
	}
}
