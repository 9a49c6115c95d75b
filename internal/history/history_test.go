package history

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLog_AppendAndEvents(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "state", "history.jsonl"))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	events := []Event{
		{Timestamp: now, Type: EventCreate, Workspace: "/ws/app__fix", Repo: "/src/app"},
		{Timestamp: now.Add(time.Minute), Type: EventMergeBack, Workspace: "/ws/app__fix", Repo: "/src/app", Details: "agent/fix"},
		{Timestamp: now.Add(2 * time.Minute), Type: EventDelete, Workspace: "/ws/app__fix"},
	}
	for _, e := range events {
		if err := log.Append(e); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	got, err := log.Events()
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if diff := cmp.Diff(events, got); diff != "" {
		t.Errorf("Events() mismatch (-want +got):\n%s", diff)
	}
}

func TestLog_EventsMissingFile(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "history.jsonl"))

	got, err := log.Events()
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d events, want 0", len(got))
	}
}

func TestLog_RecordStampsTime(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "history.jsonl"))
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	log.now = func() time.Time { return fixed }

	log.Record(EventCreate, "/ws/a__b", "/src/a")

	got, err := log.Events()
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(got) != 1 || !got[0].Timestamp.Equal(fixed) {
		t.Errorf("Events() = %+v, want one event at %v", got, fixed)
	}
}

func TestLog_RecordFailureIsSwallowed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.jsonl")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	log := NewLog(path)
	log.Record(EventCreate, "/ws/a__b", "/src/a")

	if err := log.Append(Event{Type: EventCreate}); err == nil {
		t.Error("Append() into a directory should fail")
	}
}

func TestLog_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	content := `{"timestamp":"2026-01-01T00:00:00Z","type":"create","workspace":"/ws/a__x","repo":"/src/a"}
not json

{"timestamp":"2026-01-02T00:00:00Z","type":"create","workspace":"/ws/a__y","repo":"/src/a"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewLog(path).Events()
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d events, want 2", len(got))
	}
}

func TestLog_Frequencies(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "history.jsonl"))
	log.Record(EventCreate, "/ws/a__1", "/src/a")
	log.Record(EventCreate, "/ws/a__2", "/src/a")
	log.Record(EventCreate, "/ws/b__1", "/src/b")
	log.Record(EventDelete, "/ws/a__1", "/src/a")
	log.Record(EventMergeBack, "/ws/b__1", "/src/b")

	want := map[string]int{"/src/a": 2, "/src/b": 1}
	if diff := cmp.Diff(want, log.Frequencies()); diff != "" {
		t.Errorf("Frequencies() mismatch (-want +got):\n%s", diff)
	}
}

func TestLog_ConcurrentAppend(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "history.jsonl"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Record(EventCreate, "/ws/a__x", "/src/a")
		}()
	}
	wg.Wait()

	if got := log.Frequencies()["/src/a"]; got != 20 {
		t.Errorf("Frequencies()[/src/a] = %d, want 20", got)
	}
}
