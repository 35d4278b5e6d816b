package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"aidetect/internal/logging"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBatchDebouncerCollectsBurst(t *testing.T) {
	var mu sync.Mutex
	var batches [][]Event

	b := NewBatchDebouncer(30*time.Millisecond, func(events []Event) {
		mu.Lock()
		batches = append(batches, events)
		mu.Unlock()
	})

	for i := 0; i < 5; i++ {
		b.Add(Event{Path: "f.py", Timestamp: time.Now()})
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(batches) != 1 {
		t.Fatalf("batches = %d, want 1 (burst collapsed)", len(batches))
	}
	if len(batches[0]) != 5 {
		t.Errorf("batch size = %d, want 5", len(batches[0]))
	}
}

func TestBatchDebouncerFlush(t *testing.T) {
	var mu sync.Mutex
	emitted := 0

	b := NewBatchDebouncer(time.Hour, func(events []Event) {
		mu.Lock()
		emitted = len(events)
		mu.Unlock()
	})

	b.Add(Event{Path: "a.py"})
	b.Add(Event{Path: "b.py"})
	if b.EventCount() != 2 {
		t.Fatalf("pending = %d", b.EventCount())
	}

	b.Flush()

	mu.Lock()
	defer mu.Unlock()
	if emitted != 2 {
		t.Errorf("flushed %d events, want 2", emitted)
	}
	if b.EventCount() != 0 {
		t.Error("flush should clear pending events")
	}
}

func TestBatchDebouncerCancel(t *testing.T) {
	fired := false
	b := NewBatchDebouncer(20*time.Millisecond, func([]Event) { fired = true })

	b.Add(Event{Path: "a.py"})
	b.Cancel()
	time.Sleep(60 * time.Millisecond)

	if fired {
		t.Error("cancelled batch must not emit")
	}
	if b.EventCount() != 0 {
		t.Error("cancel should drop pending events")
	}
}

func TestWatcherExtensionFilter(t *testing.T) {
	w, err := New(t.TempDir(), Config{
		Extensions: []string{".py", ".go"},
	}, func([]Event) {}, logging.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer w.fsw.Close()

	tests := []struct {
		path string
		want bool
	}{
		{"src/app.py", true},
		{"src/main.GO", true},
		{"notes.txt", false},
		{"node_modules/x/y.py", false},
		{".git/hooks/pre-commit.py", false},
	}
	for _, tt := range tests {
		if got := w.matches(tt.path); got != tt.want {
			t.Errorf("matches(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherWatchesNestedDirs(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir, "pkg/a", "pkg/b", ".git/objects")

	w, err := New(dir, Config{}, func([]Event) {}, logging.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer w.fsw.Close()

	// root, pkg, pkg/a, pkg/b; .git skipped.
	if got := w.WatchedDirs(); got != 4 {
		t.Errorf("watched dirs = %d, want 4", got)
	}
}
