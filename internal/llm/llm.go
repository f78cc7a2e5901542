// Package llm builds the tool-calling chat model for the configured
// provider. All providers return the same eino interface, so the rest of
// the service never knows which backend is answering.
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// Supported provider names.
const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderArk      = "ark"
	ProviderOllama   = "ollama"
)

// Config selects and parameterizes one model provider.
type Config struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
}

// NewChatModel constructs the chat model named by cfg.Provider.
func NewChatModel(ctx context.Context, cfg Config) (model.ToolCallingChatModel, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		mc := &openai.ChatModelConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}
		if cfg.MaxTokens > 0 {
			mc.MaxTokens = &cfg.MaxTokens
		}
		if cfg.Temperature > 0 {
			mc.Temperature = &cfg.Temperature
		}
		return openai.NewChatModel(ctx, mc)

	case ProviderDeepSeek:
		return deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	case ProviderArk:
		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	case ProviderOllama:
		return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
