package logbook

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	dir := t.TempDir()
	book, err := Open(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	if filepath.Base(book.Path()) != FileName {
		t.Fatalf("path = %s", book.Path())
	}
	for i := 0; i < 5; i++ {
		book.Info("jump-%d", i)
	}
	lines, total := book.Tail(3)
	if total != 5 {
		t.Fatalf("total lines = %d, want 5", total)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"jump-2", "jump-3", "jump-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestTailOnMissingFile(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "nothing.log"))
	if err != nil {
		t.Fatal(err)
	}
	if lines, total := book.Tail(5); lines != nil || total != 0 {
		t.Fatalf("expected empty tail, got %v %d", lines, total)
	}
	var nilBook *Logbook
	nilBook.Warn("ignored")
	if lines, _ := nilBook.Tail(1); lines != nil {
		t.Fatalf("nil logbook returned lines")
	}
}

func TestRecentParsesEntries(t *testing.T) {
	stamp := time.Date(2024, 4, 13, 6, 30, 0, 0, time.UTC)
	book, err := New(filepath.Join(t.TempDir(), "patro.log"), WithClock(func() time.Time { return stamp }))
	if err != nil {
		t.Fatal(err)
	}
	book.Info("jumped to %s", "2024-04-13")
	book.Warn("cannot read %q\nas a date", "13/04")
	book.Error("festival file missing")

	entries := book.Recent(10)
	if len(entries) != 3 {
		t.Fatalf("entries = %d", len(entries))
	}
	want := []Entry{
		{Time: stamp, Level: LevelInfo, Message: "jumped to 2024-04-13"},
		{Time: stamp, Level: LevelWarn, Message: `cannot read "13/04" as a date`},
		{Time: stamp, Level: LevelError, Message: "festival file missing"},
	}
	for i := range want {
		if !entries[i].Time.Equal(want[i].Time) || entries[i].Level != want[i].Level || entries[i].Message != want[i].Message {
			t.Fatalf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestParseLineFallback(t *testing.T) {
	got := ParseLine("free text line")
	if got.Level != LevelInfo || got.Message != "free text line" || !got.Time.IsZero() {
		t.Fatalf("unexpected entry %+v", got)
	}
}
