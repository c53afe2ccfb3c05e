package llm

import "context"

const assistantPrompt = "You are a tenant assistant for a property rental platform. " +
	"Answer briefly and helpfully about renting, leases, rent payments, maintenance and moving. " +
	"If the question needs account-specific data or a human decision, say the tenant should ask their landlord through the portal. " +
	"Never invent amounts, dates or policies."

// Service adapts a provider to the dialogue orchestrator's fallback hook.
type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Respond answers an utterance no rule-based handler matched.
func (s *Service) Respond(ctx context.Context, utterance string) (string, error) {
	return s.provider.GenerateResponse(ctx, assistantPrompt, utterance)
}

func (s *Service) GetProviderName() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.GetProviderName()
}
