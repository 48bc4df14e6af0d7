package infrastructure

import (
	"context"
	"fmt"

	"github.com/phrazzld/scry-sub004/internal/features/generation/domain"
	"github.com/phrazzld/scry-sub004/internal/platform/logger"
)

// AIClient is the uniform surface over heterogeneous LLM providers. Both
// calls are single-shot: no internal retry, and the provider's raw error is
// surfaced unchanged so the caller can classify it.
type AIClient interface {
	// GenerateText runs an unconstrained free-text completion.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateQuestionSet runs a completion constrained to the question-set
	// schema and returns the raw JSON of {"questions": [...]}.
	GenerateQuestionSet(ctx context.Context, prompt string) (string, error)
}

// NewAIClient builds the adapter matching the provider variant. Constructors
// fail when credentials are missing, so misconfiguration surfaces at wiring
// time rather than mid-chain.
func NewAIClient(ctx context.Context, provider domain.ProviderConfig, log *logger.Logger) (AIClient, error) {
	switch cfg := provider.(type) {
	case domain.GoogleConfig:
		return NewGoogleClient(ctx, cfg, log)
	case domain.OpenAIConfig:
		return NewOpenAIClient(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported provider config %T", provider)
	}
}
