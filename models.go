package quizforge

// Level is the difficulty requested from the model
type Level string

const (
	LevelEasy   Level = "Easy"
	LevelMedium Level = "Medium"
	LevelHard   Level = "Hard"
)

// ParseLevel maps user input to a Level, defaulting to Medium
func ParseLevel(s string) Level {
	switch s {
	case "Easy", "easy":
		return LevelEasy
	case "Hard", "hard":
		return LevelHard
	default:
		return LevelMedium
	}
}

// Option is a single answer choice with its letter label (A-D)
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question represents a single multiple choice question extracted from
// the model's reply
type Question struct {
	Text         string   `json:"text"`
	Options      []Option `json:"options"`
	CorrectLabel string   `json:"correct_label"`
}

// OptionText returns the display text of the option carrying the given
// label, or "" when no option matches
func (q Question) OptionText(label string) string {
	for _, opt := range q.Options {
		if opt.Label == label {
			return opt.Text
		}
	}
	return ""
}

// QuestionGrade is the per-question outcome of grading. Skipped marks a
// question whose answer letter matched none of its options; such
// questions count in neither Score nor Total.
type QuestionGrade struct {
	Correct     bool   `json:"correct"`
	CorrectText string `json:"correct_text"`
	Skipped     bool   `json:"skipped"`
}

// GradingResult holds the graded quiz: one entry per question plus the
// aggregate score
type GradingResult struct {
	Grades []QuestionGrade `json:"grades"`
	Score  int             `json:"score"`
	Total  int             `json:"total"`
}
