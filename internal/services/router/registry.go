package router

import (
	"fmt"
	"sync"

	"github.com/hxuan190/swap-router/internal/domain"
)

// Registry holds venue adapters keyed by venue identifier. Registration
// order is preserved because the sequential quoting path depends on it.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]domain.Adapter
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]domain.Adapter)}
}

// Register adds an adapter under its venue identifier. Re-registering a venue
// replaces the adapter but keeps its original position.
func (r *Registry) Register(a domain.Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	venue := a.Venue()
	if _, exists := r.adapters[venue]; !exists {
		r.order = append(r.order, venue)
	}
	r.adapters[venue] = a
}

// Get returns the adapter for a venue.
func (r *Registry) Get(venue string) (domain.Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[venue]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAdapterNotFound, venue)
	}
	return a, nil
}

// List returns all adapters in registration order.
func (r *Registry) List() []domain.Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Adapter, 0, len(r.order))
	for _, venue := range r.order {
		out = append(out, r.adapters[venue])
	}
	return out
}

// Venues returns the registered venue identifiers in registration order.
func (r *Registry) Venues() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.adapters)
}
