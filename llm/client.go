// Package llm provides a streaming client interface for Large Language Model
// providers and one implementation per supported backend.
package llm

import (
	"context"
	"strings"

	"ai/chat"
	"ai/tools"
)

// DefaultModel is used when no model is specified or the identifier has no
// recognized provider prefix.
const DefaultModel = "claude-haiku-4-5"

// Client is the interface for interacting with a Large Language Model.
type Client interface {
	// ModelID returns the provider-qualified model identifier, e.g.
	// "anthropic/claude-haiku-4-5".
	ModelID() string
	// StreamChat sends the conversation to the model and forwards assistant
	// text to onText as it arrives. The returned message carries any tool
	// calls the model requested, along with this step's token usage.
	StreamChat(ctx context.Context, messages []chat.Message, availableTools []tools.Tool, onText func(string)) (*chat.Message, chat.Usage, error)
}

// factory builds a provider client for a bare (prefix-stripped) model name.
type factory func(ctx context.Context, model string) (Client, error)

var providers = map[string]factory{
	"anthropic/": func(ctx context.Context, model string) (Client, error) {
		return NewAnthropicClient(ctx, model)
	},
	"openai/": func(ctx context.Context, model string) (Client, error) {
		return NewOpenAIClient(ctx, model)
	},
	"gemini/": func(ctx context.Context, model string) (Client, error) {
		return NewGeminiClient(ctx, model)
	},
	"bedrock/": func(ctx context.Context, model string) (Client, error) {
		return NewBedrockClient(ctx, model)
	},
}

// Recognized reports whether the model identifier carries a known provider
// prefix.
func Recognized(name string) bool {
	for prefix := range providers {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Select picks a provider by the identifier's prefix and builds a client for
// the remainder. An empty or unrecognized identifier selects the default
// Anthropic model; callers that want to warn about the silent fallback can
// check Recognized first.
func Select(ctx context.Context, name string) (Client, error) {
	for prefix, newClient := range providers {
		if strings.HasPrefix(name, prefix) {
			return newClient(ctx, strings.TrimPrefix(name, prefix))
		}
	}
	return NewAnthropicClient(ctx, DefaultModel)
}
