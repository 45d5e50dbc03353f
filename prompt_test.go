package quizforge

import (
	"strings"
	"testing"
)

func TestBuildPromptContainsContentAndLevel(t *testing.T) {
	prompt := BuildPrompt("The mitochondria is the powerhouse of the cell.", LevelHard)

	if !strings.Contains(prompt, "Text: The mitochondria is the powerhouse of the cell.") {
		t.Errorf("prompt missing content:\n%s", prompt)
	}
	if !strings.Contains(prompt, "at a Hard difficulty level") {
		t.Errorf("prompt missing difficulty level:\n%s", prompt)
	}
	if !strings.Contains(prompt, "generate 5 multiple-choice questions with 4 answer options") {
		t.Errorf("prompt missing question count instruction:\n%s", prompt)
	}
}

func TestBuildPromptFormatSection(t *testing.T) {
	prompt := BuildPrompt("anything", LevelMedium)

	// The format section is the contract the parser relies on
	for _, line := range []string{
		"Question: [Question Text]",
		"A) [Option A]",
		"B) [Option B]",
		"C) [Option C]",
		"D) [Option D]",
		"Answer: [Correct Option Letter]",
	} {
		if !strings.Contains(prompt, line) {
			t.Errorf("prompt missing format line %q", line)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"Easy", LevelEasy},
		{"easy", LevelEasy},
		{"Medium", LevelMedium},
		{"Hard", LevelHard},
		{"hard", LevelHard},
		{"", LevelMedium},
		{"expert", LevelMedium},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
