package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/nfrund/tradeskills/internal/config"
)

// ErrDuplicateKey is returned by Provide when a key is already taken.
var ErrDuplicateKey = errors.New("registry: key already provided")

// Key names a shared service and fixes its type, e.g.
// Key[*content.Catalog]("course.catalog").
type Key[T any] string

// Registry is where the server and its modules share services. Modules
// Provide in Register and look services up in Boot.
type Registry struct {
	mu       sync.RWMutex
	services map[string]any
	cfg      config.Provider
}

// New creates an empty registry around the configuration.
func New(cfg config.Provider) *Registry {
	return &Registry{
		services: make(map[string]any),
		cfg:      cfg,
	}
}

// Config returns the configuration provider.
func (r *Registry) Config() config.Provider {
	return r.cfg
}

// Set stores value under key, replacing any earlier value.
func Set[T any](r *Registry, key Key[T], value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[string(key)] = value
}

// Provide stores value under key unless another module already did.
func Provide[T any](r *Registry, key Key[T], value T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.services[string(key)]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	}
	r.services[string(key)] = value
	return nil
}

// Get looks up key. It reports false when nothing is stored or the stored
// value has another type.
func Get[T any](r *Registry, key Key[T]) (T, bool) {
	r.mu.RLock()
	val, ok := r.services[string(key)]
	r.mu.RUnlock()
	result, ok := val.(T)
	return result, ok
}

// MustGet is Get for wiring at boot, where a missing service is a bug.
func MustGet[T any](r *Registry, key Key[T]) T {
	val, ok := Get(r, key)
	if !ok {
		panic(fmt.Sprintf("registry: nothing usable for key %q (have %s)", string(key), strings.Join(r.Keys(), ", ")))
	}
	return val
}

// Keys lists the stored keys in order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.services))
	for k := range r.services {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
