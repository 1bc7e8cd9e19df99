package ai

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
)

// ProviderSettings is what a factory needs to build a provider.
type ProviderSettings struct {
	APIKey  string
	Model   string
	BaseURL string
}

// ProviderFactory builds a Provider from settings.
type ProviderFactory func(ctx context.Context, settings ProviderSettings) (Provider, error)

// Registry maps provider names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]ProviderFactory),
	}
}

// Register adds a factory; names are unique.
func (r *Registry) Register(name string, factory ProviderFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("AI provider '%s' is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Create builds the named provider. An empty API key fails before the factory runs.
func (r *Registry) Create(ctx context.Context, name string, settings ProviderSettings) (Provider, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, domainErrors.ErrProviderNotSupported.WithContext("provider", name)
	}
	if settings.APIKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing.WithContext("provider", name)
	}
	return factory(ctx, settings)
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.factories[name]
	return exists
}
