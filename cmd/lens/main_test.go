package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kingrea/lens/internal/config"
	"github.com/kingrea/lens/internal/store"
)

const sampleFeedback = `1. 종합 평가: 9.5/10점
2. "希望"를 자연스럽게 옮겼습니다.
3. "品味"의 뉘앙스가 약합니다.
4. • "品味" 대신 "감상"을 추천합니다.
5. 언어적 특성 고려: 어순을 바꿔 보세요.
6. 예문: "希望"을 담아 말해 보세요.`

func runLens(t *testing.T, projectDir, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--dir", projectDir))
	err := cmd.Execute()
	return out.String(), err
}

func writeExercise(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"original.txt": "나는 希望을 품고 品味한다",
		"user.txt":     "I hold 希望 and 品味 it",
		"ai.txt":       "With 希望 I savour it",
		"feedback.txt": sampleFeedback,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestStoreSetAndGet(t *testing.T) {
	project := t.TempDir()
	if _, err := runLens(t, project, "", "store", "set", "ai", "With 希望"); err != nil {
		t.Fatalf("store set: %v", err)
	}
	if _, err := runLens(t, project, "from stdin\n", "store", "set", "user"); err != nil {
		t.Fatalf("store set from stdin: %v", err)
	}
	out, err := runLens(t, project, "", "store", "get", "user")
	if err != nil {
		t.Fatalf("store get: %v", err)
	}
	if out != "from stdin\n" {
		t.Fatalf("store get user = %q", out)
	}
	if _, err := runLens(t, project, "", "store", "get", "score"); !errors.Is(err, store.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if _, err := runLens(t, project, "", "store", "get", "original"); err == nil {
		t.Fatalf("expected error for unset key")
	}
	if _, err := os.Stat(filepath.Join(project, config.LensDir, "state", "inputs.yaml")); err != nil {
		t.Fatalf("yaml store file missing: %v", err)
	}
}

func TestImportThenInspectJSON(t *testing.T) {
	project := t.TempDir()
	out, err := runLens(t, project, "", "store", "import", writeExercise(t))
	if err != nil {
		t.Fatalf("store import: %v", err)
	}
	if strings.Count(out, "imported ") != 4 {
		t.Fatalf("import output = %q", out)
	}

	out, err = runLens(t, project, "", "inspect", "--format", "json")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var report struct {
		Score      int      `json:"score"`
		Vocabulary []string `json:"vocabulary"`
		Sections   []struct {
			Key       string `json:"key"`
			Formatted string `json:"formatted"`
		} `json:"sections"`
		Panels []struct {
			Panel struct {
				Prefix string `json:"prefix"`
			} `json:"panel"`
			Segments []struct {
				Text       string `json:"text"`
				Kind       string `json:"kind"`
				Identifier string `json:"identifier"`
			} `json:"segments"`
		} `json:"panels"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("inspect output is not JSON: %v\n%s", err, out)
	}
	if report.Score != 95 {
		t.Fatalf("score = %d, want 95", report.Score)
	}
	if diff := cmp.Diff([]string{"希望", "品味", "감상"}, report.Vocabulary); diff != "" {
		t.Fatalf("vocabulary (-want +got):\n%s", diff)
	}
	if len(report.Sections) != 6 || report.Sections[4].Key != "learn" {
		t.Fatalf("unexpected sections: %+v", report.Sections)
	}
	if len(report.Panels) != 9 || report.Panels[2].Panel.Prefix != "ai" {
		t.Fatalf("unexpected panels: %+v", report.Panels)
	}
	ai := report.Panels[2].Segments
	if len(ai) < 2 || ai[1].Kind != "highlighted" || ai[1].Identifier != "ai_highlight_希望" {
		t.Fatalf("ai segments = %+v", ai)
	}
}

func TestInspectYAMLAndBadFormat(t *testing.T) {
	project := t.TempDir()
	out, err := runLens(t, project, "", "inspect", "--feedback", "1. 8점\n2. \"좋아\"")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"score: 80", "- 좋아", "kind: highlighted"} {
		if !strings.Contains(out, want) {
			t.Fatalf("yaml output missing %q:\n%s", want, out)
		}
	}
	if _, err := runLens(t, project, "", "inspect", "--format", "xml"); err == nil {
		t.Fatalf("expected error for xml format")
	}
}

func TestShowPrefersFlagsOverStore(t *testing.T) {
	project := t.TempDir()
	if _, err := runLens(t, project, "", "store", "import", writeExercise(t)); err != nil {
		t.Fatalf("store import: %v", err)
	}
	out, err := runLens(t, project, "", "show", "--active", "希望", "--user", "")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"점수 95", "원문", "With 希望 I savour it", "(비어 있음)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("show output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "I hold") {
		t.Fatalf("--user \"\" should blank the stored user text:\n%s", out)
	}
}

func TestShowMarkdown(t *testing.T) {
	project := t.TempDir()
	feedbackFile := filepath.Join(t.TempDir(), "fb.txt")
	if err := os.WriteFile(feedbackFile, []byte(sampleFeedback), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runLens(t, project, "", "show", "--markdown", "--feedback-file", feedbackFile)
	if err != nil {
		t.Fatalf("show --markdown: %v", err)
	}
	if !strings.Contains(out, "점수 95") || !strings.Contains(out, "希望") {
		t.Fatalf("markdown output missing content:\n%s", out)
	}
}

func TestStoreUseSwitchesBackend(t *testing.T) {
	project := t.TempDir()
	out, err := runLens(t, project, "", "store", "use", "sqlite")
	if err != nil {
		t.Fatalf("store use: %v", err)
	}
	if !strings.Contains(out, "sqlite") {
		t.Fatalf("store use output = %q", out)
	}
	if _, err := runLens(t, project, "", "store", "set", "feedback", "1. 7점"); err != nil {
		t.Fatalf("store set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(project, config.LensDir, "state", "lens.db")); err != nil {
		t.Fatalf("sqlite database missing: %v", err)
	}
	out, err = runLens(t, project, "", "store", "get", "feedback")
	if err != nil || out != "1. 7점\n" {
		t.Fatalf("store get = %q, %v", out, err)
	}
	if _, err := runLens(t, project, "", "store", "use", "redis"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
