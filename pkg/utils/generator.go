package utils

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

const DefaultGenerationTimeout = 30 * time.Second

// TextGenerator sends one prompt to a language model and returns its text reply.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewTextGenerator builds the client for provider ("gemini" or "openai").
func NewTextGenerator(provider, apiKey, model, baseURL string, timeout time.Duration) (TextGenerator, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIGenerator(apiKey, model, baseURL, timeout), nil
	case "gemini":
		return NewGeminiGenerator(apiKey, model, timeout)
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", provider)
	}
}

// CloseGenerator releases the client behind g when it holds one.
func CloseGenerator(g TextGenerator) error {
	if closer, ok := g.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func effectiveTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return DefaultGenerationTimeout
	}
	return timeout
}
