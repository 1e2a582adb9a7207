package feedback

import (
	"regexp"
	"strings"
)

// Bullet is the glyph the reviewer uses for list items.
const Bullet = "•"

// learnHeadings are the structural headings inside the learning section that
// get their own emphasised line.
var learnHeadings = []string{
	"언어적 특성 고려",
	"문장 분리와 재구성 연습",
}

var (
	leadingBlankLines = regexp.MustCompile(`^(?:[ \t]*\n)+`)
	excessBreaks      = regexp.MustCompile(`\n{3,}`)
)

// FormatSection prepares a section's text for display. Applying it twice
// yields the same result as applying it once.
func FormatSection(text string, key Key) string {
	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = breakSentences(s)
	if key == KeyLearn {
		for _, heading := range learnHeadings {
			s = emphasizeHeading(s, heading)
		}
	}
	s = spaceBullets(s)
	return excessBreaks.ReplaceAllString(s, "\n\n")
}

// FormatSections formats every section of the set.
func FormatSections(sections SectionSet) SectionSet {
	out := sections
	sections.Each(func(key Key, text string) {
		out = out.With(key, FormatSection(text, key))
	})
	return out
}

// breakSentences puts a line break after each run of periods that closes a
// sentence. Horizontal whitespace after the run is replaced by the break.
func breakSentences(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); {
		if s[i] != '.' {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && s[j] == '.' {
			j++
		}
		b.WriteString(s[i:j])
		if isSentenceEnd(s, i, j) {
			k := j
			for k < len(s) && (s[k] == ' ' || s[k] == '\t') {
				k++
			}
			switch {
			case k == len(s):
			case s[k] == '\n':
				j = k
			default:
				b.WriteByte('\n')
				j = k
			}
		}
		i = j
	}
	return b.String()
}

// isSentenceEnd reports whether the period run s[start:end] ends a sentence.
func isSentenceEnd(s string, start, end int) bool {
	if start == 0 || s[start-1] == '\n' {
		return false
	}
	if end-start == 1 && isDigit(s[start-1]) && end < len(s) && isDigit(s[end]) {
		return false
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// emphasizeHeading wraps heading in ** and moves it onto its own line.
func emphasizeHeading(s, heading string) string {
	wrapped := "**" + heading + "**"
	var b strings.Builder
	rest := s
	for {
		idx := strings.Index(rest, heading)
		if idx < 0 {
			b.WriteString(rest)
			break
		}
		start, end := idx, idx+len(heading)
		if strings.HasSuffix(rest[:start], "**") && strings.HasPrefix(rest[end:], "**") {
			start -= 2
			end += 2
		}
		unit := wrapped
		if strings.HasPrefix(rest[end:], ":") {
			unit += ":"
			end++
		}
		before := rest[:start]
		if needsBreakBefore(b.String() + before) {
			before = strings.TrimRight(before, " \t") + "\n"
		}
		b.WriteString(before)
		b.WriteString(unit)
		rest = rest[end:]
		trimmed := strings.TrimLeft(rest, " \t")
		if trimmed != "" && !strings.HasPrefix(trimmed, "\n") {
			b.WriteByte('\n')
			rest = trimmed
		}
	}
	return b.String()
}

// needsBreakBefore reports whether the current line holds anything other
// than indentation or a bullet.
func needsBreakBefore(written string) bool {
	line := written
	if idx := strings.LastIndexByte(written, '\n'); idx >= 0 {
		line = written[idx+1:]
	}
	line = strings.TrimSpace(line)
	line = strings.TrimSpace(strings.TrimPrefix(line, Bullet))
	return line != ""
}

// spaceBullets opens a blank line before every bullet and drops blank lines
// at the top of the text.
func spaceBullets(s string) string {
	if !strings.Contains(s, Bullet) {
		return s
	}
	s = strings.ReplaceAll(s, Bullet, "\n\n"+Bullet)
	return leadingBlankLines.ReplaceAllString(s, "")
}
