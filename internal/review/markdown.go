package review

import (
	"fmt"
	"strings"

	"github.com/kingrea/lens/internal/segment"
)

// Markdown renders the review as a markdown document: the score, the three
// source texts and the six formatted sections, with every vocabulary phrase
// set as inline code.
func (r *Review) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# 점수 %d\n", r.score)
	for _, p := range r.Panels() {
		title := p.Title
		if key, ok := p.SectionKey(); ok {
			title = fmt.Sprintf("%d. %s", key.Number(), p.Title)
		}
		fmt.Fprintf(&b, "\n## %s\n\n", title)
		body := markdownBody(r.Segments(p))
		if body == "" {
			body = "_(비어 있음)_"
		}
		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

func markdownBody(segments []segment.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Kind == segment.Highlighted && !strings.Contains(seg.Text, "`") {
			b.WriteString("`" + seg.Text + "`")
			continue
		}
		b.WriteString(seg.Text)
	}
	// single newlines are hard breaks in the formatted text
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	for i := 0; i < len(lines)-1; i++ {
		if strings.TrimSpace(lines[i]) != "" && strings.TrimSpace(lines[i+1]) != "" {
			lines[i] += "  "
		}
	}
	return strings.Join(lines, "\n")
}

