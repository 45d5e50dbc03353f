package quizforge

import (
	"fmt"
	"strings"
)

// BuildPrompt produces the instruction string sent to the model. The
// format section must stay in lockstep with what ParseQuestions accepts:
// the entire reliability of parsing rests on this template.
func BuildPrompt(content string, level Level) string {
	var sb strings.Builder

	sb.WriteString("You are an expert in creating multiple-choice quizzes.\n")
	sb.WriteString(fmt.Sprintf("Based on the following text, generate 5 multiple-choice questions with 4 answer options each at a %s difficulty level.\n\n", level))
	sb.WriteString(fmt.Sprintf("Text: %s\n\n", content))
	sb.WriteString("Format:\n")
	sb.WriteString("Question: [Question Text]\n")
	sb.WriteString("A) [Option A]\n")
	sb.WriteString("B) [Option B]\n")
	sb.WriteString("C) [Option C]\n")
	sb.WriteString("D) [Option D]\n")
	sb.WriteString("Answer: [Correct Option Letter]\n")

	return sb.String()
}

// FormatQuestions renders questions back into the reply grammar, one
// block per question separated by blank lines. Parsing the result yields
// an equal quiz.
func FormatQuestions(questions []Question) string {
	blocks := make([]string, 0, len(questions))
	for _, q := range questions {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Question: %s\n", q.Text)
		for _, opt := range q.Options {
			fmt.Fprintf(&sb, "%s) %s\n", opt.Label, opt.Text)
		}
		fmt.Fprintf(&sb, "Answer: %s", q.CorrectLabel)
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, "\n\n")
}
