package segment

import (
	"strings"

	"github.com/kingrea/lens/internal/feedback"
)

// highlightInfix separates the panel prefix from the phrase in an identifier.
const highlightInfix = "_highlight_"

// sectionPrefix namespaces the panels that render feedback sections.
const sectionPrefix = "feedback_"

// Panel is one independently rendered text surface.
type Panel struct {
	Name   string `json:"name" yaml:"name"`
	Prefix string `json:"prefix" yaml:"prefix"`
	Title  string `json:"title" yaml:"title"`
}

var (
	// Original is the source text the learner translated.
	Original = Panel{Name: "original", Prefix: "ko", Title: "원문"}
	// User is the learner's translation.
	User = Panel{Name: "user", Prefix: "user", Title: "나의 번역"}
	// AI is the reference translation.
	AI = Panel{Name: "ai", Prefix: "ai", Title: "AI 번역"}
)

// SourcePanels returns the three source panels in render order.
func SourcePanels() []Panel {
	return []Panel{Original, User, AI}
}

// SectionPanel returns the panel that renders one feedback section.
func SectionPanel(key feedback.Key) Panel {
	return Panel{
		Name:   string(key),
		Prefix: sectionPrefix + string(key),
		Title:  key.Title(),
	}
}

// SectionPanels returns the six feedback section panels in document order.
func SectionPanels() []Panel {
	keys := feedback.Keys()
	panels := make([]Panel, 0, len(keys))
	for _, key := range keys {
		panels = append(panels, SectionPanel(key))
	}
	return panels
}

// IsSection reports whether the panel renders a feedback section.
func (p Panel) IsSection() bool {
	return strings.HasPrefix(p.Prefix, sectionPrefix)
}

// SectionKey returns the section rendered by the panel, if any.
func (p Panel) SectionKey() (feedback.Key, bool) {
	if !p.IsSection() {
		return "", false
	}
	key := feedback.Key(strings.TrimPrefix(p.Prefix, sectionPrefix))
	return key, key.Valid()
}

// Identifier builds the cross-panel key for phrase inside a panel.
func Identifier(prefix, phrase string) string {
	return prefix + highlightInfix + phrase
}

// ParseIdentifier splits an identifier back into its prefix and phrase.
func ParseIdentifier(id string) (prefix, phrase string, ok bool) {
	idx := strings.Index(id, highlightInfix)
	if idx < 0 {
		return "", "", false
	}
	phrase = id[idx+len(highlightInfix):]
	if phrase == "" {
		return "", "", false
	}
	return id[:idx], phrase, true
}
