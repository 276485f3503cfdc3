package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"text-decoder/api/internal/llm"
)

const DefaultModel = "gemini-1.5-pro"

type Engine struct {
	Model string
	cl    *genai.Client
}

// New builds the client once. An empty key yields an engine whose every call
// fails, so the gateway still starts and answers the non-model routes.
func New(ctx context.Context, apiKey, model string) (*Engine, error) {
	e := &Engine{Model: strings.TrimSpace(model)}
	if e.Model == "" {
		e.Model = DefaultModel
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return e, nil
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	e.cl = cl
	return e, nil
}

func (e *Engine) Name() string { return "gemini" }

func (e *Engine) Close() error {
	if e.cl == nil {
		return nil
	}
	return e.cl.Close()
}

func (e *Engine) Generate(ctx context.Context, prompt string, cfg llm.GenerationConfig) (string, error) {
	if e.cl == nil {
		return "", errors.New("GEMINI_API_KEY is empty")
	}

	m := e.cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = generationConfig(cfg)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	txt := firstText(resp)
	if txt == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return txt, nil
}

func generationConfig(cfg llm.GenerationConfig) genai.GenerationConfig {
	gc := genai.GenerationConfig{
		Temperature: ptrFloat32(cfg.Temperature),
	}
	if cfg.MaxOutputTokens > 0 {
		gc.MaxOutputTokens = ptrInt32(cfg.MaxOutputTokens)
	}
	if cfg.StructuredOutput {
		gc.ResponseMIMEType = "application/json"
	}
	return gc
}

// firstText joins the text parts of the first candidate that has any.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }
