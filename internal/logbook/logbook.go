// internal/logbook/logbook.go
//
// The session log is the human-readable journey of a review session: which
// texts were loaded, which phrase the reader hovered, when the store changed.
// The TUI tails it in its footer.

package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
	LevelHover Level = "HOVER"
)

// hoverSep sits between the quoted phrase and the identifier of a hover entry.
const hoverSep = "” from "

// Entry is one parsed line of the logbook.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// ParseEntry reads a line written by Append.
func ParseEntry(line string) (Entry, bool) {
	stamp, rest, ok := strings.Cut(line, " ")
	if !ok {
		return Entry{}, false
	}
	ts, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return Entry{}, false
	}
	level, message, _ := strings.Cut(rest, " ")
	if level == "" {
		return Entry{}, false
	}
	return Entry{Time: ts, Level: Level(level), Message: strings.TrimLeft(message, " ")}, true
}

// Phrase returns the hovered phrase and its identifier for a HOVER entry.
func (e Entry) Phrase() (phrase, identifier string, ok bool) {
	if e.Level != LevelHover || !strings.HasPrefix(e.Message, "“") {
		return "", "", false
	}
	i := strings.LastIndex(e.Message, hoverSep)
	if i < 0 {
		return "", "", false
	}
	return strings.TrimPrefix(e.Message[:i], "“"), e.Message[i+len(hoverSep):], true
}

// Logbook appends session entries to a text file.
type Logbook struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// New creates a logbook that writes to the provided path.
func New(path string) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure dir: %w", err)
	}
	return &Logbook{path: path, now: time.Now}, nil
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes a single entry. Multi-line messages are folded onto one line
// so Tail counts entries, not fragments.
func (l *Logbook) Append(level Level, message string) {
	if l == nil {
		return
	}
	message = strings.Join(strings.Fields(message), " ")
	l.mu.Lock()
	defer l.mu.Unlock()
	line := fmt.Sprintf("%s %-5s %s\n", l.now().UTC().Format(time.RFC3339), level, message)
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(line)
}

// Hover records that the reader activated phrase through identifier.
func (l *Logbook) Hover(phrase, identifier string) {
	l.Append(LevelHover, "“"+phrase+hoverSep+identifier)
}

// HoveredPhrases lists the distinct phrases of HOVER entries in the order
// they were first hovered.
func (l *Logbook) HoveredPhrases() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var phrases []string
	seen := map[string]bool{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		entry, ok := ParseEntry(scanner.Text())
		if !ok {
			continue
		}
		phrase, _, ok := entry.Phrase()
		if !ok || seen[phrase] {
			continue
		}
		seen[phrase] = true
		phrases = append(phrases, phrase)
	}
	return phrases
}

// Tail returns up to maxLines of the most recent entries together with the
// total number of entries in the file.
func (l *Logbook) Tail(maxLines int) ([]string, int) {
	if l == nil || maxLines <= 0 {
		return nil, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	ring := make([]string, 0, maxLines)
	total := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		total++
		if len(ring) == maxLines {
			copy(ring, ring[1:])
			ring = ring[:maxLines-1]
		}
		ring = append(ring, scanner.Text())
	}
	if total == 0 {
		return nil, 0
	}
	return ring, total
}

// Info appends an informational entry.
func (l *Logbook) Info(format string, args ...any) {
	l.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (l *Logbook) Warn(format string, args ...any) {
	l.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (l *Logbook) Error(format string, args ...any) {
	l.Append(LevelError, fmt.Sprintf(format, args...))
}
