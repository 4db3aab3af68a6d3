package output

import "context"

type LLMPort interface {
	Name() string
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

type ChatResponse struct {
	Content string
}
