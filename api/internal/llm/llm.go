// Package llm is the Model Invoker: one bounded call to the external
// generation capability per request, with a fixed config per template.
package llm

//go:generate go run go.uber.org/mock/mockgen -source=llm.go -destination=../mocks/mock_generator.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"text-decoder/api/internal/apperr"
	"text-decoder/api/internal/prompt"
)

type GenerationConfig struct {
	Temperature      float32
	MaxOutputTokens  int32
	StructuredOutput bool
}

// Generator is the external capability: generate(prompt, config) -> text.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}

// Configs are fixed per template and never taken from callers.
var Configs = map[prompt.ID]GenerationConfig{
	prompt.SpeakerIdentification: {Temperature: 0.3, MaxOutputTokens: 4096, StructuredOutput: true},
	prompt.ConversationAnalysis:  {Temperature: 0.4, MaxOutputTokens: 8192, StructuredOutput: true},
	prompt.ResponseImpact:        {Temperature: 0.5, MaxOutputTokens: 4096, StructuredOutput: true},
	prompt.Profile:               {Temperature: 0.4, MaxOutputTokens: 8192, StructuredOutput: true},
	prompt.SelfProfile:           {Temperature: 0.4, MaxOutputTokens: 8192, StructuredOutput: true},
}

const DefaultTimeout = 60 * time.Second

type Invoker struct {
	gen     Generator
	timeout time.Duration
}

func NewInvoker(gen Generator, timeout time.Duration) *Invoker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Invoker{gen: gen, timeout: timeout}
}

// Invoke sends the rendered prompt with the template's config. Every failure,
// timeout included, is reported as UpstreamError. There is no retry.
func (i *Invoker) Invoke(ctx context.Context, id prompt.ID, rendered string) (string, error) {
	cfg, ok := Configs[id]
	if !ok {
		return "", apperr.Wrap(apperr.UnexpectedFailure, "Analysis failed", "Unable to process the request. Please try again.",
			fmt.Errorf("llm: no generation config for %q", id))
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	reply, err := i.gen.Generate(ctx, rendered, cfg)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%s: timed out after %s: %w", i.gen.Name(), i.timeout, err)
		} else {
			err = fmt.Errorf("%s: %w", i.gen.Name(), err)
		}
		return "", apperr.Wrap(apperr.UpstreamError, "Analysis failed", "Unable to process the conversation. Please try again.", err)
	}
	return reply, nil
}
