package logbook

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "logs", "session.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("hover feedback_good_highlight_phrase-%d", i)
	}
	lines, total := book.Tail(3)
	if total != 5 {
		t.Fatalf("total lines = %d, want 5", total)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"phrase-2", "phrase-3", "phrase-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestAppendFoldsMultilineMessages(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "session.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	book.Warn("store reload failed:\n  yaml: line 2")
	lines, total := book.Tail(10)
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	want := "2026-03-01T09:00:00Z WARN  store reload failed: yaml: line 2"
	if lines[0] != want {
		t.Fatalf("line = %q, want %q", lines[0], want)
	}
}

func TestTailOnMissingFileOrNilBook(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "session.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	if lines, total := book.Tail(4); lines != nil || total != 0 {
		t.Fatalf("Tail on missing file = %v, %d", lines, total)
	}
	var none *Logbook
	none.Info("ignored")
	if lines, total := none.Tail(4); lines != nil || total != 0 {
		t.Fatalf("nil logbook Tail = %v, %d", lines, total)
	}
}

func TestHoverEntriesParseBack(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "session.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	book.Hover("希望", "feedback_good_highlight_希望")
	book.Info("Highlight cleared")
	book.Hover("a from b", "feedback_bad_highlight_a from b")
	book.Hover("希望", "feedback_example_highlight_希望")

	lines, total := book.Tail(1)
	if total != 4 {
		t.Fatalf("total = %d, want 4", total)
	}
	entry, ok := ParseEntry(lines[0])
	if !ok {
		t.Fatalf("ParseEntry(%q) failed", lines[0])
	}
	if entry.Level != LevelHover || !entry.Time.Equal(book.now()) {
		t.Fatalf("unexpected entry %+v", entry)
	}
	phrase, id, ok := entry.Phrase()
	if !ok || phrase != "希望" || id != "feedback_example_highlight_希望" {
		t.Fatalf("Phrase() = %q, %q, %v", phrase, id, ok)
	}

	got := book.HoveredPhrases()
	want := []string{"希望", "a from b"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("HoveredPhrases() = %q, want %q", got, want)
	}
}

func TestParseEntryRejectsForeignLines(t *testing.T) {
	for _, line := range []string{"", "no-timestamp here", "2026-03-01T09:00:00Z"} {
		if _, ok := ParseEntry(line); ok {
			t.Fatalf("ParseEntry(%q) should fail", line)
		}
	}
	info, ok := ParseEntry("2026-03-01T09:00:00Z INFO  “x” from y")
	if !ok {
		t.Fatalf("info line should parse")
	}
	if _, _, ok := info.Phrase(); ok {
		t.Fatalf("only HOVER entries carry a phrase")
	}
}
