package review

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kingrea/lens/internal/feedback"
	"github.com/kingrea/lens/internal/segment"
)

const sampleFeedback = `1. 종합 평가: 9.5/10점
2. "希望"를 자연스럽게 옮겼습니다. 좋습니다.
3. "品味"의 뉘앙스가 약합니다.
4. • "品味" 대신 "감상"을 추천합니다.
5. 언어적 특성 고려: 어순을 바꿔 보세요.
6. 예문: "希望"을 담아 말해 보세요.`

func sampleInputs() Inputs {
	return Inputs{
		Original: "나는 希望을 품고 品味한다",
		User:     "I hold 希望 and 品味 it",
		AI:       "With 希望 I savour it",
		Feedback: sampleFeedback,
	}
}

func TestBuildDerivesEverything(t *testing.T) {
	r := Build(sampleInputs())
	if r.Score() != 95 {
		t.Fatalf("Score() = %d, want 95", r.Score())
	}
	if diff := cmp.Diff([]string{"希望", "品味", "감상"}, r.Vocabulary().Phrases()); diff != "" {
		t.Fatalf("vocabulary mismatch (-want +got):\n%s", diff)
	}
	if got := r.Text(segment.SectionPanel(feedback.KeyGood)); got != "\"希望\"를 자연스럽게 옮겼습니다.\n좋습니다." {
		t.Fatalf("formatted good section = %q", got)
	}
	if got := r.Sections().Get(feedback.KeyGood); got != "\"希望\"를 자연스럽게 옮겼습니다. 좋습니다." {
		t.Fatalf("raw good section = %q", got)
	}
	if got := r.Text(segment.SectionPanel(feedback.KeyLearn)); got != "**언어적 특성 고려**:\n어순을 바꿔 보세요." {
		t.Fatalf("formatted learn section = %q", got)
	}
	if got := len(r.Panels()); got != 9 {
		t.Fatalf("len(Panels()) = %d, want 9", got)
	}
}

func TestSegmentsReconstructEveryPanel(t *testing.T) {
	r := Build(sampleInputs())
	for _, ps := range r.AllSegments() {
		if got, want := segment.Join(ps.Segments), r.Text(ps.Panel); got != want {
			t.Fatalf("panel %s: Join = %q, want %q", ps.Panel.Name, got, want)
		}
	}
	ai := r.Segments(segment.AI)
	want := []segment.Segment{
		{Text: "With ", Kind: segment.Plain},
		{Text: "希望", Kind: segment.Highlighted, Identifier: "ai_highlight_希望"},
		{Text: " I savour it", Kind: segment.Plain},
	}
	if diff := cmp.Diff(want, ai); diff != "" {
		t.Fatalf("ai segments mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWithEmptyInputs(t *testing.T) {
	r := Build(Inputs{User: "only a translation"})
	if r.Score() != 0 || r.Vocabulary().Len() != 0 {
		t.Fatalf("empty feedback must yield zero score and vocabulary")
	}
	segs := r.Segments(segment.User)
	if len(segs) != 1 || segs[0].Kind != segment.Plain {
		t.Fatalf("user panel must be one plain segment, got %+v", segs)
	}
	if segs := r.Segments(segment.Original); len(segs) != 0 {
		t.Fatalf("empty panel produced %d segments", len(segs))
	}
	if got := r.Text(segment.Panel{Prefix: "unknown"}); got != "" {
		t.Fatalf("unknown panel text = %q", got)
	}
}

func TestMarkdownMarksPhrasesAndBreaks(t *testing.T) {
	md := Build(sampleInputs()).Markdown()
	for _, want := range []string{
		"# 점수 95\n",
		"## 원문\n\n나는 `希望`을 품고 `品味`한다\n",
		"## 2. ",
		"\"`希望`\"를 자연스럽게 옮겼습니다.  \n좋습니다.\n",
		"**언어적 특성 고려**:  \n어순을 바꿔 보세요.",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	if empty := Build(Inputs{}).Markdown(); strings.Count(empty, "_(비어 있음)_") != 9 {
		t.Fatalf("every empty panel should be marked:\n%s", empty)
	}
}
