package config

import (
	"os"
	"sync"
)

type AnthropicConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

var (
	anthropicConfig *AnthropicConfig
	anthropicOnce   sync.Once
)

func LoadAnthropicConfig() *AnthropicConfig {
	anthropicOnce.Do(func() {
		anthropicConfig = &AnthropicConfig{
			APIKey:    os.Getenv("ANTHROPIC_API_KEY"),
			BaseURL:   envString("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
			Model:     envString("ANTHROPIC_MODEL", "claude-3-opus-20240229"),
			MaxTokens: envInt("ANTHROPIC_MAX_TOKENS", 150),
		}
	})
	return anthropicConfig
}
