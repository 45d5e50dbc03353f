package quizforge

import (
	"regexp"
	"strings"
)

var optionLine = regexp.MustCompile(`^([A-D])[).]\s*(.*)$`)

// ParseQuestions extracts questions from a raw model reply. It is a
// best-effort extraction, not a validating deserializer: malformed
// blocks are dropped silently and the result may hold fewer than the
// requested number of questions, down to none. It never fails.
//
// A block is kept when it has question text, at least one option line
// and an answer letter. Stricter checks (exactly four options, answer
// letter present among the options) are deliberately left to grading so
// that degraded model replies stay playable where possible.
func ParseQuestions(raw string) []Question {
	var questions []Question

	for _, block := range strings.Split(strings.TrimSpace(stripFences(raw)), "\n\n") {
		var q Question
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(line, "Question:"):
				q.Text = strings.TrimSpace(strings.TrimPrefix(line, "Question:"))
			case strings.HasPrefix(line, "Answer:"):
				q.CorrectLabel = answerLetter(strings.TrimPrefix(line, "Answer:"))
			default:
				if m := optionLine.FindStringSubmatch(line); m != nil {
					q.Options = append(q.Options, Option{Label: m[1], Text: strings.TrimSpace(m[2])})
				}
				// Anything else is model commentary; ignore it.
			}
		}
		if q.Text != "" && len(q.Options) > 0 && q.CorrectLabel != "" {
			questions = append(questions, q)
		}
	}

	return questions
}

// answerLetter normalizes the captured answer: trimmed and uppercased,
// and when the model pads it ("B)", "B."), reduced to the leading letter.
func answerLetter(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) > 1 && s[0] >= 'A' && s[0] <= 'D' {
		return s[:1]
	}
	return s
}

// stripFences removes a markdown code fence wrapping the whole reply.
// Models regularly fence plain-text output even when told not to.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return raw
	}
	s = s[3:]
	if i := strings.Index(s, "\n"); i != -1 {
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "```"); i != -1 {
		s = s[:i]
	}
	return s
}
