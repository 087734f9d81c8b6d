package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/lessonloop/internal/logger"
	"github.com/abhisek/lessonloop/internal/store"
)

// New builds the configured provider and wraps it so that every attempt
// is logged and transient failures are retried:
// caller → retry → logging → vendor.
func New(ctx context.Context, cfg Config, events store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pc, _ := cfg.Selected()

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(pc)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(pc)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(pc)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, pc)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initialize %s provider: %w", cfg.Provider, err)
	}
	return WithRetry(WithLogging(base, events, log), cfg.Retry), nil
}
