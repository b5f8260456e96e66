package history

import (
	"path/filepath"
	"testing"
	"time"
)

func testRecord(id string, endedAt time.Time) Record {
	return Record{
		ID:             id,
		StartedAt:      endedAt.Add(-time.Minute),
		EndedAt:        endedAt,
		AudioPath:      "/tmp/" + id + ".wav",
		TranscriptPath: "/tmp/" + id + ".txt",
		Transcript:     "words for " + id,
		DurationSecs:   60,
	}
}

func TestAddAndRecent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	now := time.Now()
	if err := store.Add(testRecord("a", now)); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	recs, err := store.Recent(5)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("Recent() returned %d rows, want 1", len(recs))
	}
	got := recs[0]
	if got.ID != "a" || got.Transcript != "words for a" || got.DurationSecs != 60 {
		t.Errorf("row = %+v, want the inserted record", got)
	}
	if got.EndedAt.Unix() != now.Unix() {
		t.Errorf("EndedAt = %v, want %v", got.EndedAt.Unix(), now.Unix())
	}
	if got.Summary != "" {
		t.Errorf("Summary = %q, want empty before attach", got.Summary)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	base := time.Now()
	for i, id := range []string{"old", "mid", "new"} {
		if err := store.Add(testRecord(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Add(%s) error = %v", id, err)
		}
	}

	recs, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Recent(2) returned %d rows, want 2", len(recs))
	}
	if recs[0].ID != "new" || recs[1].ID != "mid" {
		t.Errorf("order = [%s, %s], want [new, mid]", recs[0].ID, recs[1].ID)
	}
}

func TestAttachSummaryUpdatesNewestMatch(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	base := time.Now()
	older := testRecord("older", base)
	newer := testRecord("newer", base.Add(time.Hour))
	// Both sessions wrote to the same transcript path.
	older.TranscriptPath = "/tmp/shared.txt"
	newer.TranscriptPath = "/tmp/shared.txt"
	if err := store.Add(older); err != nil {
		t.Fatal(err)
	}
	if err := store.Add(newer); err != nil {
		t.Fatal(err)
	}

	ok, err := store.AttachSummary("/tmp/shared.txt", "the summary")
	if err != nil {
		t.Fatalf("AttachSummary() error = %v", err)
	}
	if !ok {
		t.Fatal("AttachSummary() = false, want true for a known path")
	}

	recs, err := store.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	for _, rec := range recs {
		switch rec.ID {
		case "newer":
			if rec.Summary != "the summary" {
				t.Errorf("newer.Summary = %q, want %q", rec.Summary, "the summary")
			}
		case "older":
			if rec.Summary != "" {
				t.Errorf("older.Summary = %q, want untouched", rec.Summary)
			}
		}
	}
}

func TestAttachSummaryUnknownPath(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	ok, err := store.AttachSummary("/nowhere/transcript.txt", "s")
	if err != nil {
		t.Fatalf("AttachSummary() error = %v", err)
	}
	if ok {
		t.Error("AttachSummary() = true for a path never archived")
	}
}

func TestRowsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Add(testRecord("persisted", time.Now())); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	recs, err := reopened.Recent(1)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "persisted" {
		t.Errorf("rows after reopen = %+v, want the persisted session", recs)
	}
}

func TestRecentEmptyDatabase(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	recs, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Recent() on empty archive returned %d rows", len(recs))
	}
}
