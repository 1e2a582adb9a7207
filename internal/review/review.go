// Package review wires the feedback engine together for one exercise.
//
// Build runs once per input change: it parses the feedback, formats every
// section, collects the phrase vocabulary and reads the score. Segments are
// not cached; renderers ask for them on every frame so the active state is
// always current.
package review

import (
	"github.com/kingrea/lens/internal/feedback"
	"github.com/kingrea/lens/internal/segment"
)

// Inputs are the four texts of one exercise.
type Inputs struct {
	Original string `json:"original" yaml:"original"`
	User     string `json:"user" yaml:"user"`
	AI       string `json:"ai" yaml:"ai"`
	Feedback string `json:"feedback" yaml:"feedback"`
}

// Review is the derived, read-only view of an exercise.
type Review struct {
	inputs     Inputs
	sections   feedback.SectionSet
	formatted  feedback.SectionSet
	vocabulary feedback.Vocabulary
	score      int
}

// Build derives a Review from the inputs.
func Build(in Inputs) *Review {
	sections := feedback.ParseSections(in.Feedback)
	return &Review{
		inputs:     in,
		sections:   sections,
		formatted:  feedback.FormatSections(sections),
		vocabulary: feedback.BuildVocabulary(sections),
		score:      feedback.ExtractScore(sections.Get(feedback.KeySummary)),
	}
}

// Inputs returns the texts the review was built from.
func (r *Review) Inputs() Inputs {
	return r.inputs
}

// Sections returns the raw parsed sections.
func (r *Review) Sections() feedback.SectionSet {
	return r.sections
}

// Formatted returns the display-ready sections.
func (r *Review) Formatted() feedback.SectionSet {
	return r.formatted
}

// Vocabulary returns the quoted phrases in first-appearance order.
func (r *Review) Vocabulary() feedback.Vocabulary {
	return r.vocabulary
}

// Score returns the headline score read from the summary.
func (r *Review) Score() int {
	return r.score
}

// Panels lists every panel in render order: the three source texts, then
// the six feedback sections.
func (r *Review) Panels() []segment.Panel {
	return append(segment.SourcePanels(), segment.SectionPanels()...)
}

// Text returns the display text of a panel.
func (r *Review) Text(p segment.Panel) string {
	switch p.Prefix {
	case segment.Original.Prefix:
		return r.inputs.Original
	case segment.User.Prefix:
		return r.inputs.User
	case segment.AI.Prefix:
		return r.inputs.AI
	}
	if key, ok := p.SectionKey(); ok {
		return r.formatted.Get(key)
	}
	return ""
}

// Segments cuts a panel's display text against the vocabulary.
func (r *Review) Segments(p segment.Panel, opts ...segment.Option) []segment.Segment {
	return segment.Split(r.Text(p), p.Prefix, r.vocabulary.Phrases(), opts...)
}

// PanelSegments pairs a panel with its segments.
type PanelSegments struct {
	Panel    segment.Panel     `json:"panel" yaml:"panel"`
	Segments []segment.Segment `json:"segments" yaml:"segments"`
}

// AllSegments segments every panel in render order.
func (r *Review) AllSegments(opts ...segment.Option) []PanelSegments {
	panels := r.Panels()
	out := make([]PanelSegments, 0, len(panels))
	for _, p := range panels {
		out = append(out, PanelSegments{Panel: p, Segments: r.Segments(p, opts...)})
	}
	return out
}
