// Package llm wraps the chat-completion backend behind a single
// text-in/text-out interface. No streaming, no structured output.
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/arkline/fxquant/config"
)

// Completer submits one composed prompt and returns one text response.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatCompleter adapts an eino chat model to the Completer interface.
type ChatCompleter struct {
	chatModel model.ChatModel
}

// NewChatCompleter builds the chat model for the configured provider.
func NewChatCompleter(ctx context.Context, cfg *config.Config) (*ChatCompleter, error) {
	chatModel, err := newChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &ChatCompleter{chatModel: chatModel}, nil
}

func newChatModel(ctx context.Context, cfg *config.Config) (model.ChatModel, error) {
	switch cfg.LLMProvider {
	case "deepseek":
		return deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			BaseURL:   backendURL(cfg, "https://api.deepseek.com/v1"),
			APIKey:    cfg.DeepSeekAPIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		})
	case "openai":
		maxTokens := cfg.MaxTokens
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:   backendURL(cfg, "https://api.openai.com/v1"),
			APIKey:    cfg.OpenAIAPIKey,
			Model:     cfg.Model,
			MaxTokens: &maxTokens,
		})
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLMProvider)
	}
}

func backendURL(cfg *config.Config, fallback string) string {
	if cfg.BackendURL != "" {
		return cfg.BackendURL
	}
	return fallback
}

// Complete sends the prompt as a single user message and returns the
// model's text unchanged.
func (c *ChatCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	return resp.Content, nil
}
