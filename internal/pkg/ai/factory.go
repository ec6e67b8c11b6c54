package ai

import (
	"github.com/gitaimsg/gitaimsg/internal/pkg/config"
	apperrors "github.com/gitaimsg/gitaimsg/internal/pkg/errors"
)

// factoryFunc constructs a provider from its resolved settings.
type factoryFunc func(settings config.ProviderSettings) (Provider, error)

// providerFactories is the single dispatch table mapping provider names to
// constructors. Unknown names fail closed at construction time.
var providerFactories = map[string]factoryFunc{
	config.ProviderOllama: func(s config.ProviderSettings) (Provider, error) {
		return NewOllamaProvider(s.BaseURL), nil
	},
	config.ProviderOpenAI: func(s config.ProviderSettings) (Provider, error) {
		return NewOpenAIProvider(s)
	},
	config.ProviderGemini: func(s config.ProviderSettings) (Provider, error) {
		return NewGeminiProvider(s)
	},
}

// NewProvider creates the provider selected by the resolved configuration.
func NewProvider(cfg *config.Config) (Provider, error) {
	settings, ok := cfg.ActiveProvider()
	if !ok {
		return nil, apperrors.NewUnknownProviderError(cfg.General.Provider)
	}

	factory, ok := providerFactories[cfg.General.Provider]
	if !ok {
		return nil, apperrors.NewUnknownProviderError(cfg.General.Provider)
	}
	return factory(settings)
}
