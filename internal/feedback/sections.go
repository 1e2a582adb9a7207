// internal/feedback/sections.go
//
// The reviewer model answers in six numbered blocks. This file turns that
// answer into a fixed SectionSet so the rest of lens never has to care how
// well the model followed the numbering.

package feedback

import (
	"regexp"
	"strings"
)

// Key names one of the six feedback sections.
type Key string

const (
	KeySummary   Key = "summary"
	KeyGood      Key = "good"
	KeyBad       Key = "bad"
	KeyRecommend Key = "recommend"
	KeyLearn     Key = "learn"
	KeyExample   Key = "example"
)

// sectionOrder is the document order of the six blocks.
var sectionOrder = []Key{KeySummary, KeyGood, KeyBad, KeyRecommend, KeyLearn, KeyExample}

var sectionTitles = map[Key]string{
	KeySummary:   "종합 평가",
	KeyGood:      "잘한 점",
	KeyBad:       "아쉬운 점",
	KeyRecommend: "추천 표현",
	KeyLearn:     "학습 제안",
	KeyExample:   "활용 예문",
}

// Keys returns the section keys in document order.
func Keys() []Key {
	return append([]Key(nil), sectionOrder...)
}

// Title returns the display heading for the section.
func (k Key) Title() string {
	if title, ok := sectionTitles[k]; ok {
		return title
	}
	return string(k)
}

// Number returns the 1-based marker digit of the section, or 0 for an
// unknown key.
func (k Key) Number() int {
	for i, key := range sectionOrder {
		if key == k {
			return i + 1
		}
	}
	return 0
}

// Valid reports whether k is one of the six section keys.
func (k Key) Valid() bool {
	_, ok := sectionTitles[k]
	return ok
}

// markerPattern matches "1)", "2.", "3-" and the whitespace after them.
var markerPattern = regexp.MustCompile(`[1-6][).\-]\s*`)

// SectionSet maps the six section keys to their text. The zero value is an
// empty set where every key reads as "".
type SectionSet struct {
	texts [6]string
}

// ParseSections splits raw feedback into six sections by their numeric
// markers. Markers are consumed in document order regardless of their
// numeral, so a missing marker shifts later sections left. Once the sixth
// block is open, further markers are treated as content.
func ParseSections(raw string) SectionSet {
	var set SectionSet
	matches := markerPattern.FindAllStringIndex(raw, -1)
	if len(matches) == 0 {
		return set
	}

	// A repeated marker ("1. 1. ") collapses into one run. Touching markers
	// with different numerals ("1. 2. ") stay apart, leaving an empty section.
	type run struct{ start, end int }
	var runs []run
	for _, m := range matches {
		if n := len(runs); n > 0 && runs[n-1].end == m[0] && raw[runs[n-1].start] == raw[m[0]] {
			runs[n-1].end = m[1]
			continue
		}
		if len(runs) == len(sectionOrder) {
			break
		}
		runs = append(runs, run{start: m[0], end: m[1]})
	}

	for i, r := range runs {
		end := len(raw)
		if i+1 < len(runs) {
			end = runs[i+1].start
		}
		set.texts[i] = strings.TrimSpace(raw[r.end:end])
	}
	return set
}

// Get returns the text of a section, or "" for unknown keys.
func (s SectionSet) Get(key Key) string {
	for i, k := range sectionOrder {
		if k == key {
			return s.texts[i]
		}
	}
	return ""
}

// With returns a copy of the set with key replaced by text.
func (s SectionSet) With(key Key, text string) SectionSet {
	for i, k := range sectionOrder {
		if k == key {
			s.texts[i] = text
		}
	}
	return s
}

// Each calls fn for every section in document order, empty ones included.
func (s SectionSet) Each(fn func(key Key, text string)) {
	for i, k := range sectionOrder {
		fn(k, s.texts[i])
	}
}

// Map returns the sections as a plain map, always with six keys.
func (s SectionSet) Map() map[Key]string {
	out := make(map[Key]string, len(sectionOrder))
	s.Each(func(key Key, text string) {
		out[key] = text
	})
	return out
}

// Empty reports whether every section is blank.
func (s SectionSet) Empty() bool {
	for _, text := range s.texts {
		if text != "" {
			return false
		}
	}
	return true
}

// Text joins the non-empty sections in document order.
func (s SectionSet) Text() string {
	var parts []string
	for _, text := range s.texts {
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}
