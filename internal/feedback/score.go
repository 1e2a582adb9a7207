package feedback

import (
	"math"
	"regexp"
	"strconv"
)

var (
	// "9/10점", "9.5 / 10", "85/100점"
	ratioScorePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*(\d+)\s*(?:점)?`)
	// "9점", "8.5점"
	pointScorePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*점`)
)

// ExtractScore derives a 0–100 score from the summary section. A ratio such
// as "9.5/10점" wins over a bare "9점", which is read as out of ten. Neither
// formula is clamped, so "15점" yields 150.
func ExtractScore(summary string) int {
	for _, m := range ratioScorePattern.FindAllStringSubmatch(summary, -1) {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		d, err := strconv.ParseFloat(m[2], 64)
		if err != nil || d == 0 {
			continue
		}
		return int(math.Round(n * 100 / d))
	}
	if m := pointScorePattern.FindStringSubmatch(summary); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			return int(math.Round(n * 10))
		}
	}
	return 0
}
