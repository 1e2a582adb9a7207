// Package feedback decomposes the reviewer's free-form answer on a
// translation exercise.
//
// The answer is expected to carry six numbered blocks (summary, strengths,
// weaknesses, recommended phrasing, learning suggestions, example usage).
// ParseSections splits it into a SectionSet, FormatSection prepares each
// block for display, ExtractPhrases and BuildVocabulary collect the quoted
// phrases that the renderer correlates across panels, and ExtractScore reads
// the headline score out of the summary.
//
// Nothing in this package fails: malformed input degrades to empty sections,
// an empty vocabulary, or a zero score.
package feedback
