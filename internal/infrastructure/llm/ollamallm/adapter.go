// Package ollamallm adapts a local Ollama model to the LLMPort, as a
// second evaluation backend when no remote API key is configured.
package ollamallm

import (
	"context"
	"fmt"

	"design-eval/internal/application/port/output"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

var _ output.LLMPort = (*Adapter)(nil)

type Adapter struct {
	llm *ollama.LLM
}

func NewAdapter(serverURL, model string) (*Adapter, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("ollama init failed: %w", err)
	}
	return &Adapter{llm: llm}, nil
}

func (a *Adapter) Name() string {
	return "ollama"
}

func (a *Adapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	prompt := req.User
	if req.System != "" {
		prompt = req.System + "\n\n" + req.User
	}

	opts := []llms.CallOption{llms.WithTemperature(req.Temperature)}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	content, err := llms.GenerateFromSinglePrompt(ctx, a.llm, prompt, opts...)
	if err != nil {
		return nil, fmt.Errorf("ollama generate failed: %w", err)
	}

	return &output.ChatResponse{Content: content}, nil
}
