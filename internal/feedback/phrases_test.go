package feedback

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractPhrases(t *testing.T) {
	cases := map[string][]string{
		"a \"x\" b \"y\" c":    {"x", "y"},
		"":                     {},
		"\"x\" and \"x\" again": {"x", "x"},
		"\"a\" then \"b":       {"a"},
		"\"\" then \"x\"":      {"x"},
		"no quotes at all":     {},
		"\"두 단어\"를 보세요":         {"두 단어"},
	}
	for input, want := range cases {
		got := ExtractPhrases(input)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("ExtractPhrases(%q) mismatch (-want +got):\n%s", input, diff)
		}
	}
}

func TestBuildVocabularyDedupesInFirstAppearanceOrder(t *testing.T) {
	sections := ParseSections("1. \"x\" and \"y\"\n2. \"y\" then \"z\"\n6. \"x\" last \"w\"")
	vocab := BuildVocabulary(sections)
	want := []string{"x", "y", "z", "w"}
	if diff := cmp.Diff(want, vocab.Phrases()); diff != "" {
		t.Fatalf("vocabulary mismatch (-want +got):\n%s", diff)
	}
	if vocab.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", vocab.Len())
	}
	if !vocab.Contains("z") || vocab.Contains("q") {
		t.Fatalf("Contains reported wrong membership")
	}
}

func TestVocabularyPhrasesReturnsCopy(t *testing.T) {
	vocab := NewVocabulary("a", "", "b", "a")
	phrases := vocab.Phrases()
	phrases[0] = "mutated"
	if diff := cmp.Diff([]string{"a", "b"}, vocab.Phrases()); diff != "" {
		t.Fatalf("vocabulary mutated through Phrases (-want +got):\n%s", diff)
	}
}

func TestEmptyVocabulary(t *testing.T) {
	vocab := BuildVocabulary(ParseSections(""))
	if vocab.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", vocab.Len())
	}
	if len(vocab.Phrases()) != 0 {
		t.Fatalf("expected no phrases")
	}
}
