package tui

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kingrea/lens/internal/review"
	"github.com/kingrea/lens/internal/segment"
)

func TestWrapSegmentsSplitsWidePhraseAcrossRows(t *testing.T) {
	segs := []segment.Segment{
		{Text: "abc ", Kind: segment.Plain},
		{Text: "希望", Kind: segment.Highlighted, Identifier: "ai_highlight_希望"},
		{Text: " de", Kind: segment.Plain},
	}
	got := wrapSegments(segs, 6, false)
	want := [][]span{
		{
			{text: "abc ", col: 0, width: 4},
			{text: "希", col: 4, width: 2, id: "ai_highlight_希望"},
		},
		{
			{text: "望", col: 0, width: 2, id: "ai_highlight_希望"},
			{text: " de", col: 2, width: 3},
		},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(span{})); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapSegmentsDropsWrappedSpaceAndHonoursNewlines(t *testing.T) {
	segs := []segment.Segment{{Text: "abcd efgh\nij", Kind: segment.Plain}}
	rows := wrapSegments(segs, 4, false)
	var texts []string
	for _, row := range rows {
		var b strings.Builder
		for _, sp := range row {
			b.WriteString(sp.text)
		}
		texts = append(texts, b.String())
	}
	if diff := cmp.Diff([]string{"abcd", "efgh", "ij"}, texts); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapSegmentsEmphasis(t *testing.T) {
	segs := []segment.Segment{{Text: "**언어적 특성 고려**:", Kind: segment.Plain}}
	rows := wrapSegments(segs, 40, true)
	want := [][]span{{
		{text: "언어적 특성 고려", col: 0, width: 16, bold: true},
		{text: ":", col: 16, width: 1},
	}}
	if diff := cmp.Diff(want, rows, cmp.AllowUnexported(span{})); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	plain := wrapSegments(segs, 40, false)
	if plain[0][0].text != "**언어적 특성 고려**:" {
		t.Fatalf("source panels keep asterisks, got %q", plain[0][0].text)
	}
}

func TestRenderHitsCoverEveryHighlightedSegment(t *testing.T) {
	rv := review.Build(review.Inputs{
		Original: "나는 希望을 품고",
		AI:       "With 希望",
		Feedback: "1. 9점\n2. \"希望\" 좋음",
	})
	doc := Renderer{Theme: DefaultTheme(), Width: 60}.Render(rv, nil)

	counts := map[string]int{}
	for _, h := range doc.Hits {
		counts[h.Identifier]++
		if h.End <= h.Start {
			t.Fatalf("empty hit %+v", h)
		}
		if id, ok := doc.HitAt(h.Start, h.Row); !ok || id != h.Identifier {
			t.Fatalf("HitAt(%d, %d) = %q, %v", h.Start, h.Row, id, ok)
		}
		if id, ok := doc.HitAt(h.End, h.Row); ok && id == h.Identifier {
			t.Fatalf("hit end must be exclusive: %+v", h)
		}
	}
	want := map[string]int{
		"ko_highlight_希望":            1,
		"ai_highlight_希望":            1,
		"feedback_good_highlight_希望": 1,
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("hit counts (-want +got):\n%s", diff)
	}
	if _, ok := doc.HitAt(0, 0); ok {
		t.Fatalf("title row has no hits")
	}
}

func TestSnapshotListsEveryPanel(t *testing.T) {
	rv := review.Build(review.Inputs{Feedback: "1. 9/10점"})
	out := Snapshot(rv, DefaultTheme(), 80, nil)
	for _, want := range []string{"점수 90", "원문", "나의 번역", "AI 번역", "1. ", "6. ", "(비어 있음)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("snapshot missing %q:\n%s", want, out)
		}
	}
}
