package feedback

import "regexp"

// quotedPattern pairs double quotes left to right. An empty pair still
// consumes both quotes so it cannot shift the pairing of what follows.
var quotedPattern = regexp.MustCompile(`"([^"]*)"`)

// ExtractPhrases returns every quoted phrase in text in order of appearance,
// duplicates included. An unmatched trailing quote yields nothing.
func ExtractPhrases(text string) []string {
	if text == "" {
		return []string{}
	}
	matches := quotedPattern.FindAllStringSubmatch(text, -1)
	phrases := make([]string, 0, len(matches))
	for _, m := range matches {
		if m[1] == "" {
			continue
		}
		phrases = append(phrases, m[1])
	}
	return phrases
}

// Vocabulary is the ordered, de-duplicated set of phrases quoted anywhere in
// the feedback.
type Vocabulary struct {
	phrases []string
	index   map[string]struct{}
}

// NewVocabulary builds a vocabulary from phrases, keeping first occurrences.
func NewVocabulary(phrases ...string) Vocabulary {
	v := Vocabulary{index: map[string]struct{}{}}
	v.add(phrases...)
	return v
}

// BuildVocabulary merges the phrases of all six sections in document order.
func BuildVocabulary(sections SectionSet) Vocabulary {
	v := NewVocabulary()
	sections.Each(func(_ Key, text string) {
		v.add(ExtractPhrases(text)...)
	})
	return v
}

func (v *Vocabulary) add(phrases ...string) {
	if v.index == nil {
		v.index = map[string]struct{}{}
	}
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		if _, ok := v.index[phrase]; ok {
			continue
		}
		v.index[phrase] = struct{}{}
		v.phrases = append(v.phrases, phrase)
	}
}

// Phrases returns a copy of the phrases in first-appearance order.
func (v Vocabulary) Phrases() []string {
	return append([]string{}, v.phrases...)
}

// Len returns the number of distinct phrases.
func (v Vocabulary) Len() int {
	return len(v.phrases)
}

// Contains reports whether phrase is part of the vocabulary.
func (v Vocabulary) Contains(phrase string) bool {
	_, ok := v.index[phrase]
	return ok
}
