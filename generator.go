package quizforge

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyReply is returned when the model answers with no usable text
var ErrEmptyReply = errors.New("model returned an empty reply")

// TextGenerator is the single capability the session needs from the
// outside world: send a prompt, receive raw text or an error.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// OpenAIGenerator calls an OpenAI chat model and returns its reply as
// plain text
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator backed by the given API key.
// An empty model selects GPT-4o.
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// GenerateText sends the prompt as a single user message. Any
// non-success status, missing choice or empty content is a total
// failure; the caller gets no partial output.
func (g *OpenAIGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	VerboseLog("Sending prompt to %s (%d characters)", g.model, len(prompt))

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate quiz text: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", ErrEmptyReply
	}

	VerboseLog("Received %d characters from %s", len(content), g.model)
	return content, nil
}

// LoggedGenerator decorates a TextGenerator with call transcript
// recording. Recording failures are logged and swallowed: a broken
// transcript must never break a quiz.
type LoggedGenerator struct {
	gen TextGenerator
	log *CallLog
}

// NewLoggedGenerator wraps gen so every call lands in log
func NewLoggedGenerator(gen TextGenerator, log *CallLog) *LoggedGenerator {
	return &LoggedGenerator{gen: gen, log: log}
}

func (lg *LoggedGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	reply, err := lg.gen.GenerateText(ctx, prompt)

	rec := CallRecord{
		Prompt:   prompt,
		Response: reply,
		Status:   "ok",
		Duration: time.Since(start),
	}
	if err != nil {
		rec.Status = "error"
		rec.Error = err.Error()
	}
	if logErr := lg.log.Record(rec); logErr != nil {
		VerboseLog("Failed to record model call: %v", logErr)
	}

	return reply, err
}
