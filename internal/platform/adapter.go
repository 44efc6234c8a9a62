package platform

import (
	"context"
	"strings"
	"sync"
)

// PublishRequest carries everything an adapter needs to publish one post to
// one destination. Credentials travel with the request; adapters hold no
// per-store state.
type PublishRequest struct {
	Caption        string
	ImageURL       string
	AccessToken    string
	ExternalPageID string
}

// PublishResult is the normalized success outcome.
type PublishResult struct {
	ExternalID string
}

// Adapter sends one post to one destination. A non-nil error is the
// normalized failure outcome; the engine records err.Error() on the delivery.
type Adapter interface {
	Publish(ctx context.Context, req PublishRequest) (*PublishResult, error)
}

// Registry maps destination platform names to adapters. Names are matched
// case-insensitively. Register everything once at startup.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
	}
}

func (r *Registry) Register(name string, a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[strings.ToLower(name)] = a
}

func (r *Registry) Resolve(name string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[strings.ToLower(name)]
	return a, ok
}
