package generator

import (
	"fmt"
	"sort"
	"sync"

	"porttariff/internal/config"
	"porttariff/internal/port"
)

// ProviderFactory creates a Generator from a provider config.
type ProviderFactory func(cfg *config.ProviderConfig) (port.Generator, error)

var (
	mu        sync.RWMutex
	providers = map[string]ProviderFactory{}
)

// RegisterProvider registers a generator provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	mu.Lock()
	defer mu.Unlock()
	providers[name] = factory
}

// Providers returns the registered provider names, sorted.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(providers))
	for n := range providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New creates a Generator from a provider config using the registered factory.
func New(cfg *config.ProviderConfig) (port.Generator, error) {
	mu.RLock()
	factory, ok := providers[cfg.Provider]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown generator provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewChain builds one Generator per configured provider. A single provider
// is returned as is; several are wrapped in a FallbackGenerator in order.
func NewChain(cfgs []*config.ProviderConfig) (port.Generator, error) {
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("no generator providers configured")
	}
	gens := make([]port.Generator, 0, len(cfgs))
	names := make([]string, 0, len(cfgs))
	for _, c := range cfgs {
		g, err := New(c)
		if err != nil {
			return nil, fmt.Errorf("creating %s generator: %w", c.Provider, err)
		}
		gens = append(gens, g)
		names = append(names, c.Provider)
	}
	if len(gens) == 1 {
		return gens[0], nil
	}
	return NewFallbackGenerator(gens, names), nil
}
