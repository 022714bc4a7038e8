package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if s.Driver() == nil {
		t.Fatal("expected non-nil ent driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWALOnFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "coursegen.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"settings", "request_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestMigrationCreatesIndexes(t *testing.T) {
	s := openTestStore(t)

	for _, index := range []string{"requestevent_timestamp", "requestevent_operation", "requestevent_success"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", index,
		).Scan(&name)
		if err != nil {
			t.Errorf("index %s: %v", index, err)
		}
	}
}

func TestMigrationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coursegen.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.TokenRepo()
	ctx := context.Background()

	tok, err := repo.LoadToken(ctx)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if tok != "" {
		t.Fatalf("token = %q, want empty", tok)
	}

	if err := repo.SaveToken(ctx, "first"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SaveToken(ctx, "second"); err != nil {
		t.Fatalf("save again: %v", err)
	}

	tok, err = repo.LoadToken(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tok != "second" {
		t.Errorf("token = %q, want %q", tok, "second")
	}

	if err := repo.ClearToken(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := repo.ClearToken(ctx); err != nil {
		t.Fatalf("clear twice: %v", err)
	}
	tok, _ = repo.LoadToken(ctx)
	if tok != "" {
		t.Errorf("token after clear = %q, want empty", tok)
	}
}

func TestTokenSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coursegen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.TokenRepo().SaveToken(ctx, "abc"); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	tok, err := s.TokenRepo().LoadToken(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tok != "abc" {
		t.Errorf("token = %q, want abc", tok)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestRequestEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	paths := []string{"/course-content", "/course-content/c1", "/course-content/c1/read"}
	for i, p := range paths {
		err := repo.AppendRequestEvent(ctx, RequestEventData{
			RequestID: fmt.Sprintf("req-%d", i),
			Operation: "op",
			Method:    "GET",
			Path:      p,
			Status:    200,
			LatencyMs: int64(10 * i),
			Success:   i != 2,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryRequestEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[0].Path != "/course-content/c1/read" {
		t.Errorf("newest path = %q", events[0].Path)
	}
	if events[0].Success {
		t.Error("newest event should be a failure")
	}
	if events[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	limited, err := repo.QueryRequestEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited = %d, want 2", len(limited))
	}

	after, err := repo.QueryRequestEvents(ctx, QueryOpts{After: events[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 || after[0].RequestID != "req-2" {
		t.Errorf("after = %+v", after)
	}

	got, err := repo.GetRequestEvent(ctx, events[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestID != "req-0" {
		t.Fatalf("get = %+v", got)
	}

	missing, err := repo.GetRequestEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}
