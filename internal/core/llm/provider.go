// Package llm provides an optional LLM fallback for chatbot turns no rule
// matched. The rule-based pipeline stays authoritative; when no provider is
// configured the canned fallbacks are used instead.
package llm

import "context"

// Provider generates a response from a system prompt and a user message.
type Provider interface {
	GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error)
	GetProviderName() string
}
