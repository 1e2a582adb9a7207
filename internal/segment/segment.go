// Package segment cuts panel text into plain and highlighted runs.
//
// Segments of one text are an ordered partition: joining their Text fields
// reproduces the input exactly, and two plain segments are never adjacent.
package segment

import "strings"

// Kind distinguishes plain text from a highlighted phrase.
type Kind int

const (
	Plain Kind = iota
	Highlighted
)

func (k Kind) String() string {
	if k == Highlighted {
		return "highlighted"
	}
	return "plain"
}

// MarshalText lets YAML and JSON encoders print the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Segment is a contiguous run of a panel's text.
type Segment struct {
	Text       string `json:"text" yaml:"text"`
	Kind       Kind   `json:"kind" yaml:"kind"`
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Active     bool   `json:"active,omitempty" yaml:"active,omitempty"`
}

// Option customizes Split.
type Option func(*options)

type options struct {
	isActive func(id string) bool
}

// WithActive marks the highlighted segment whose identifier equals id.
func WithActive(id string) Option {
	return func(o *options) {
		if id == "" {
			return
		}
		o.isActive = func(candidate string) bool { return candidate == id }
	}
}

// WithActiveFunc marks highlighted segments for which fn returns true.
func WithActiveFunc(fn func(id string) bool) Option {
	return func(o *options) {
		if fn != nil {
			o.isActive = fn
		}
	}
}

// Split segments text against the phrase vocabulary. It repeatedly takes the
// leftmost phrase occurrence in the unconsumed text; when several phrases
// start at the same index the one listed first in vocab wins, so vocabulary
// order is the tie-break. Empty input yields no segments.
func Split(text, prefix string, vocab []string, opts ...Option) []Segment {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if text == "" {
		return nil
	}

	var segments []Segment
	rest := text
	for rest != "" {
		idx, phrase := earliestMatch(rest, vocab)
		if idx < 0 {
			break
		}
		if idx > 0 {
			segments = append(segments, Segment{Text: rest[:idx], Kind: Plain})
		}
		id := Identifier(prefix, phrase)
		segments = append(segments, Segment{
			Text:       phrase,
			Kind:       Highlighted,
			Identifier: id,
			Active:     o.isActive != nil && o.isActive(id),
		})
		rest = rest[idx+len(phrase):]
	}
	if rest != "" {
		segments = append(segments, Segment{Text: rest, Kind: Plain})
	}
	return segments
}

// earliestMatch returns the smallest index at which any phrase occurs and the
// first phrase in vocab order that starts there.
func earliestMatch(s string, vocab []string) (int, string) {
	best, winner := -1, ""
	for _, phrase := range vocab {
		if phrase == "" {
			continue
		}
		// Only the part that could still beat the current best is searched.
		window := s
		if best >= 0 {
			limit := best + len(phrase)
			if limit > len(s) {
				limit = len(s)
			}
			window = s[:limit]
		}
		idx := strings.Index(window, phrase)
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best {
			best, winner = idx, phrase
		}
	}
	return best, winner
}

// Join concatenates the segment texts.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// HighlightedOnly returns only the highlighted segments.
func HighlightedOnly(segments []Segment) []Segment {
	var out []Segment
	for _, seg := range segments {
		if seg.Kind == Highlighted {
			out = append(out, seg)
		}
	}
	return out
}
