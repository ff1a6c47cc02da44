package socialmedia

import (
	"fmt"

	"github.com/trendlens/backend/internal/domain/market"
	"github.com/trendlens/backend/internal/domain/social"
)

// Registry holds the configured platform adapters keyed by platform code
type Registry struct {
	platforms map[market.Platform]social.Platform
	order     []market.Platform
}

// NewRegistry creates a registry over the given adapters. Registration
// order is preserved for iteration.
func NewRegistry(adapters ...social.Platform) *Registry {
	r := &Registry{
		platforms: make(map[market.Platform]social.Platform, len(adapters)),
		order:     make([]market.Platform, 0, len(adapters)),
	}
	for _, adapter := range adapters {
		code := adapter.Code()
		if _, exists := r.platforms[code]; !exists {
			r.order = append(r.order, code)
		}
		r.platforms[code] = adapter
	}
	return r
}

// Get returns the adapter for a platform, or ErrPlatformNotConfigured
// when none is registered
func (r *Registry) Get(platform market.Platform) (social.Platform, error) {
	adapter, ok := r.platforms[platform]
	if !ok {
		return nil, fmt.Errorf("%s: %w", platform, social.ErrPlatformNotConfigured)
	}
	return adapter, nil
}

// All returns the registered adapters in registration order
func (r *Registry) All() []social.Platform {
	adapters := make([]social.Platform, 0, len(r.order))
	for _, code := range r.order {
		adapters = append(adapters, r.platforms[code])
	}
	return adapters
}
