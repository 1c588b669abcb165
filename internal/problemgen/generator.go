// Package problemgen turns unreliable completion output into question
// batches. Generation failures are soft: callers receive an empty batch and
// a typed error describing which stage failed, and the session keeps going.
package problemgen

import (
	"context"
	"time"

	"go.uber.org/zap"

	"egetutor/internal/exam"
	"egetutor/internal/llm"
)

// Config bounds generation requests.
type Config struct {
	// MaxTokens caps the completion length. Generous: a 7-question batch
	// with explanations runs long.
	MaxTokens int

	// Temperature adds variety between generated batches.
	Temperature float64

	// Timeout bounds one completion round-trip, retries included.
	Timeout time.Duration

	// FullExamParts and FullExamPartSize shape the full-exam batch:
	// parts * partSize questions over sequential calls.
	FullExamParts    int
	FullExamPartSize int
}

// DefaultConfig returns the standard generation limits.
func DefaultConfig() Config {
	return Config{
		MaxTokens:        8192,
		Temperature:      0.7,
		Timeout:          30 * time.Second,
		FullExamParts:    3,
		FullExamPartSize: 7,
	}
}

// Generator produces question batches through an LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
	log      *zap.Logger
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{provider: provider, config: cfg, log: log}
}

// Generate issues one completion call for promptText and recovers the
// question list from its output. On failure the batch is empty and the
// error identifies the stage: *TransportError, *NoArrayError, *ParseError.
func (g *Generator) Generate(ctx context.Context, promptText string) ([]exam.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	resp, err := g.provider.Complete(ctx, llm.Request{
		Prompt:      promptText,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	questions, err := ExtractQuestions(resp.Text)
	if err != nil {
		g.log.Warn("question recovery failed",
			zap.String("model", resp.Model),
			zap.Error(err),
		)
		return nil, err
	}
	return questions, nil
}

// GenerateFullExam builds a full simulated exam: FullExamParts sequential
// calls of FullExamPartSize questions each, identically themed, at the given
// difficulty level. Any single failed part aborts the whole batch; a partial
// exam is never returned.
func (g *Generator) GenerateFullExam(ctx context.Context, theme string, level int) ([]exam.Question, error) {
	var questions []exam.Question
	for i := 0; i < g.config.FullExamParts; i++ {
		prompt := exam.BuildPrompt(exam.ModeFull, 0, g.config.FullExamPartSize, theme, level)
		part, err := g.Generate(ctx, prompt)
		if err != nil {
			g.log.Warn("full exam part failed",
				zap.Int("part", i+1),
				zap.Error(err),
			)
			return nil, err
		}
		questions = append(questions, part...)
	}
	return questions, nil
}
