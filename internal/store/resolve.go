package store

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/kingrea/lens/internal/review"
)

// Resolve assembles the exercise inputs. A key present in supplied wins even
// when its value is empty; every other key is read from st, and a key absent
// from both reads as "". Values are folded to "\n" line endings and NFC so
// phrases typed on one platform match texts pasted from another.
func Resolve(ctx context.Context, st Store, supplied map[string]string) (review.Inputs, error) {
	values := make(map[string]string, 4)
	for _, key := range InputKeys() {
		if v, ok := supplied[key]; ok {
			values[key] = v
			continue
		}
		if st == nil {
			continue
		}
		v, ok, err := st.Get(ctx, key)
		if err != nil {
			return review.Inputs{}, err
		}
		if ok {
			values[key] = v
		}
	}
	return review.Inputs{
		Original: Normalize(values[KeyOriginal]),
		User:     Normalize(values[KeyUser]),
		AI:       Normalize(values[KeyAI]),
		Feedback: Normalize(values[KeyFeedback]),
	}, nil
}

// Normalize folds line endings and composes the text to NFC.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return norm.NFC.String(s)
}
