package feedback

import "testing"

func TestExtractScore(t *testing.T) {
	cases := map[string]int{
		"종합 평가: 9/10점":           90,
		"종합 평가: 9.5/10점":         95,
		"9점":                     90,
		"8.5점입니다":                 85,
		"총점 85 / 100":             85,
		"no digits here":          0,
		"":                        0,
		"15점":                    150,
		"9/0 이지만 7점":              70,
		"전체적으로 7/10, 세부 항목은 9점": 70,
	}
	for input, want := range cases {
		if got := ExtractScore(input); got != want {
			t.Fatalf("ExtractScore(%q) = %d, want %d", input, got, want)
		}
	}
}
