package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kingrea/lens/internal/config"
	"github.com/kingrea/lens/internal/review"
	"github.com/kingrea/lens/internal/segment"
)

const (
	indentWidth  = 2
	defaultWidth = 100
	minWidth     = 20
)

// Theme holds the phrase colours.
type Theme struct {
	Highlight lipgloss.Color
	Active    lipgloss.Color
}

// DefaultTheme matches the colours of a freshly initialised config.
func DefaultTheme() Theme {
	return Theme{Highlight: lipgloss.Color("#FFD166"), Active: lipgloss.Color("#FF6B6B")}
}

// ThemeFromConfig reads the theme block of the project config.
func ThemeFromConfig(cfg *config.Config) Theme {
	if cfg == nil {
		return DefaultTheme()
	}
	return Theme{
		Highlight: lipgloss.Color(cfg.Project.Theme.Highlight),
		Active:    lipgloss.Color(cfg.Project.Theme.Active),
	}
}

// Hit is the screen span of one highlighted phrase on one document row.
// Start is inclusive and End exclusive, both in terminal cells.
type Hit struct {
	Row        int
	Start      int
	End        int
	Identifier string
}

// Document is a rendered stack of panels together with its hit map.
type Document struct {
	Lines []string
	Hits  []Hit
}

// String joins the rendered rows.
func (d Document) String() string {
	return strings.Join(d.Lines, "\n")
}

// HitAt returns the identifier drawn at cell x of row, if any.
func (d Document) HitAt(x, row int) (string, bool) {
	for _, h := range d.Hits {
		if h.Row == row && x >= h.Start && x < h.End {
			return h.Identifier, true
		}
	}
	return "", false
}

// Renderer lays panels out one above the other at a fixed width.
type Renderer struct {
	Theme Theme
	Width int
}

func (r Renderer) contentWidth() int {
	width := r.Width
	if width <= 0 {
		width = defaultWidth
	}
	return max(minWidth, width-indentWidth-1)
}

// Render draws every panel of rv. isActive decides which phrases are drawn
// active; nil draws none.
func (r Renderer) Render(rv *review.Review, isActive func(id string) bool) Document {
	var doc Document
	width := r.contentWidth()
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	for i, ps := range rv.AllSegments(segment.WithActiveFunc(isActive)) {
		if i > 0 {
			doc.Lines = append(doc.Lines, "")
		}
		doc.Lines = append(doc.Lines, r.title(ps.Panel))
		if len(ps.Segments) == 0 {
			doc.Lines = append(doc.Lines, strings.Repeat(" ", indentWidth)+empty.Render("(비어 있음)"))
			continue
		}
		for _, ln := range wrapSegments(ps.Segments, width, ps.Panel.IsSection()) {
			row := len(doc.Lines)
			doc.Lines = append(doc.Lines, r.line(ln))
			for _, sp := range ln {
				if sp.id == "" {
					continue
				}
				doc.Hits = append(doc.Hits, Hit{
					Row:        row,
					Start:      indentWidth + sp.col,
					End:        indentWidth + sp.col + sp.width,
					Identifier: sp.id,
				})
			}
		}
	}
	return doc
}

func (r Renderer) title(p segment.Panel) string {
	label := p.Title
	if key, ok := p.SectionKey(); ok {
		label = fmt.Sprintf("%d. %s", key.Number(), p.Title)
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("▌ " + label)
}

func (r Renderer) line(spans []span) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", indentWidth))
	for _, sp := range spans {
		b.WriteString(r.style(sp).Render(sp.text))
	}
	return b.String()
}

func (r Renderer) style(sp span) lipgloss.Style {
	style := lipgloss.NewStyle()
	switch {
	case sp.active:
		style = style.Bold(true).Foreground(lipgloss.Color("#1A1A1A")).Background(r.Theme.Active)
	case sp.id != "":
		style = style.Underline(true).Foreground(r.Theme.Highlight)
	}
	if sp.bold {
		style = style.Bold(true)
	}
	return style
}

// Header is the one-line summary above the panels.
func Header(rv *review.Review, activePhrase string) string {
	parts := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")).Render("◈ LENS"),
		fmt.Sprintf("점수 %d", rv.Score()),
		fmt.Sprintf("표현 %d개", rv.Vocabulary().Len()),
	}
	if activePhrase != "" {
		parts = append(parts, fmt.Sprintf("“%s”", activePhrase))
	}
	return strings.Join(parts, " · ")
}

// Snapshot renders the header and every panel without interaction.
func Snapshot(rv *review.Review, theme Theme, width int, isActive func(id string) bool) string {
	doc := Renderer{Theme: theme, Width: width}.Render(rv, isActive)
	return Header(rv, "") + "\n\n" + doc.String()
}

// span is a run of cells on one row that share a style.
type span struct {
	text   string
	col    int
	width  int
	id     string
	active bool
	bold   bool
}

func (s span) sameStyle(id string, active, bold bool) bool {
	return s.id == id && s.active == active && s.bold == bold
}

// wrapSegments breaks segments into rows of at most width cells. Explicit
// newlines always break; long rows wrap at the cell limit and drop the space
// they wrapped on. With emphasis set, "**" toggles bold and is not drawn.
func wrapSegments(segments []segment.Segment, width int, emphasis bool) [][]span {
	rows := [][]span{nil}
	col := 0
	bold := false
	for _, seg := range segments {
		text := seg.Text
		for text != "" {
			if emphasis && strings.HasPrefix(text, "**") {
				bold = !bold
				text = text[2:]
				continue
			}
			r, size := utf8.DecodeRuneInString(text)
			text = text[size:]
			if r == '\n' {
				rows = append(rows, nil)
				col = 0
				continue
			}
			if r == '\t' {
				r = ' '
			}
			w := runewidth.RuneWidth(r)
			if col > 0 && col+w > width {
				rows = append(rows, nil)
				col = 0
				if r == ' ' {
					continue
				}
			}
			row := rows[len(rows)-1]
			if n := len(row); n > 0 && row[n-1].sameStyle(seg.Identifier, seg.Active, bold) {
				row[n-1].text += string(r)
				row[n-1].width += w
			} else {
				row = append(row, span{
					text:   string(r),
					col:    col,
					width:  w,
					id:     seg.Identifier,
					active: seg.Active,
					bold:   bold,
				})
			}
			rows[len(rows)-1] = row
			col += w
		}
	}
	return rows
}

