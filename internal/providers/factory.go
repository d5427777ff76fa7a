package providers

import (
	"fmt"

	"chat_proxy/internal/config"
)

// New creates the provider for the configured kind. config.Load already
// rejects unknown kinds, but the factory checks again so it is safe on its
// own.
func New(cfg config.ProviderConfig) (Provider, error) {
	switch cfg.Kind {
	case config.ProviderHFTGI:
		return NewHFTGIProvider(cfg)
	case config.ProviderRunpod:
		return NewRunpodProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider kind %q", cfg.Kind)
	}
}
