package quizforge

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// SessionState names the phase of the current generation cycle
type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateGenerating SessionState = "generating"
	StateAnswering  SessionState = "answering"
	StateGraded     SessionState = "graded"
)

var (
	// ErrEmptyContent rejects a generation request with blank content
	ErrEmptyContent = errors.New("please enter some content before generating a quiz")
	// ErrGenerationInFlight rejects a second generation while one is pending
	ErrGenerationInFlight = errors.New("a quiz is already being generated")
	// ErrNoQuestions reports a reply from which no questions survived parsing
	ErrNoQuestions = errors.New("could not generate quiz")
	// ErrUnanswered rejects submission while any question lacks a selection
	ErrUnanswered = errors.New("please answer all questions before submitting")
	// ErrNotAnswering rejects answer/submit operations outside the answering phase
	ErrNotAnswering = errors.New("no quiz is in progress")
)

// Session owns the quiz state for one generation cycle: the parsed
// questions, the user's selections and, after submission, the grading
// result. All fields are exported so the web front end can keep the
// whole session in a cookie value (gob), mirroring how the state moves
// through one browser session. A fresh cycle replaces everything; there
// is no history.
type Session struct {
	State      SessionState
	Content    string
	Level      Level
	Questions  []Question
	Selections []string // parallel to Questions; "" = unanswered
	Result     *GradingResult
}

// NewSession returns an idle session with no quiz loaded
func NewSession() *Session {
	return &Session{State: StateIdle}
}

// Begin starts a new generation cycle. Blank content is rejected without
// changing state; so is a cycle started while another request is in
// flight. On success every trace of the previous cycle is discarded.
func (s *Session) Begin(content string, level Level) error {
	if s.State == StateGenerating {
		return ErrGenerationInFlight
	}
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}

	s.State = StateGenerating
	s.Content = content
	s.Level = level
	s.Questions = nil
	s.Selections = nil
	s.Result = nil
	return nil
}

// Complete feeds the model's raw reply into the session. An empty parse
// counts as a generation failure and returns the session to idle.
func (s *Session) Complete(rawText string) error {
	if s.State != StateGenerating {
		return fmt.Errorf("cannot complete generation in state %q", s.State)
	}

	questions := ParseQuestions(rawText)
	if len(questions) == 0 {
		s.State = StateIdle
		return ErrNoQuestions
	}

	VerboseLog("Parsed %d questions from model reply", len(questions))
	s.State = StateAnswering
	s.Questions = questions
	s.Selections = make([]string, len(questions))
	return nil
}

// Fail records a transport or model failure and returns the session to
// idle. The cause is wrapped so front ends can show it. Like Complete
// it only applies to a cycle that is actually generating; a live quiz
// cannot be wiped by a stray failure report.
func (s *Session) Fail(err error) error {
	if s.State != StateGenerating {
		return fmt.Errorf("cannot fail generation in state %q", s.State)
	}
	s.State = StateIdle
	return fmt.Errorf("%w: %v", ErrNoQuestions, err)
}

// Generate runs one full generation cycle against gen. The external
// call is the session's only suspension point; callers drive it
// blocking (CLI) or per-request (web) as they see fit.
func (s *Session) Generate(ctx context.Context, gen TextGenerator, content string, level Level) error {
	if err := s.Begin(content, level); err != nil {
		return err
	}

	raw, err := gen.GenerateText(ctx, BuildPrompt(content, level))
	if err != nil {
		return s.Fail(err)
	}
	return s.Complete(raw)
}

// Select records the user's choice for question i
func (s *Session) Select(i int, label string) error {
	if s.State != StateAnswering {
		return ErrNotAnswering
	}
	if i < 0 || i >= len(s.Questions) {
		return fmt.Errorf("question index %d out of range", i)
	}
	s.Selections[i] = strings.ToUpper(strings.TrimSpace(label))
	return nil
}

// Submit grades the quiz. Submission is all-or-nothing: any unanswered
// question leaves the session in the answering state with no result.
func (s *Session) Submit() (*GradingResult, error) {
	if s.State != StateAnswering {
		return nil, ErrNotAnswering
	}
	for _, sel := range s.Selections {
		if sel == "" {
			return nil, ErrUnanswered
		}
	}

	s.Result = Grade(s.Questions, s.Selections)
	s.State = StateGraded
	return s.Result, nil
}

// Grade compares each selection against the question's answer letter.
// A question whose answer letter matches none of its options is skipped
// rather than crashing the cycle: it appears in the grades but counts in
// neither score nor total.
func Grade(questions []Question, selections []string) *GradingResult {
	result := &GradingResult{Grades: make([]QuestionGrade, len(questions))}

	for i, q := range questions {
		correctText := q.OptionText(q.CorrectLabel)
		if correctText == "" {
			result.Grades[i] = QuestionGrade{Skipped: true}
			continue
		}

		// A selection beyond the slice counts as unanswered
		selected := ""
		if i < len(selections) {
			selected = selections[i]
		}
		correct := strings.ToUpper(selected) == q.CorrectLabel
		result.Grades[i] = QuestionGrade{Correct: correct, CorrectText: correctText}
		result.Total++
		if correct {
			result.Score++
		}
	}

	return result
}

// FeedbackMessage picks the encouragement tier for a final score. The
// boundaries are inclusive and checked top down.
func FeedbackMessage(score, total int) string {
	if total == 0 {
		return "Don't give up! Every mistake is a step forward."
	}
	ratio := float64(score) / float64(total)
	switch {
	case ratio == 1.0:
		return "Perfect Score! You're a quiz master!"
	case ratio >= 0.7:
		return "Great job! You're almost there! Keep it up!"
	case ratio >= 0.4:
		return "Not bad! You're improving!"
	default:
		return "Don't give up! Every mistake is a step forward."
	}
}
