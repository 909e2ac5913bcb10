package texture

import (
	"strings"
	"sync"

	"github.com/rotisserie/eris"
)

// Registry holds named texture systems in registration order. The zero-value
// registry is usable. Registration happens at startup; lookups afterwards
// are read-only and need no locking by callers.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	systems map[string]*System
}

// Register validates sys and adds it to the registry. Re-registering an
// existing name is a configuration error.
func (r *Registry) Register(sys *System) error {
	if err := sys.Validate(); err != nil {
		return eris.Wrap(err, "texture: register system")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.systems == nil {
		r.systems = make(map[string]*System)
	}
	if _, ok := r.systems[sys.Name]; ok {
		return eris.Errorf("texture: system %q already registered", sys.Name)
	}
	r.systems[sys.Name] = sys
	r.order = append(r.order, sys.Name)
	return nil
}

// Get returns the named system. Unknown names are a hard failure that names
// what was requested and what is available.
func (r *Registry) Get(name string) (*System, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sys, ok := r.systems[name]
	if !ok {
		return nil, eris.Errorf("texture: unknown system %q, available: %s",
			name, strings.Join(r.order, ", "))
	}
	return sys, nil
}

// Names returns system names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// List returns name→description for every registered system, in
// registration order when iterated via Names.
func (r *Registry) List() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.order))
	for name, sys := range r.systems {
		out[name] = sys.Description()
	}
	return out
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry holding the built-in systems.
// Built once, then read-only.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = &Registry{}
		for _, sys := range builtinSystems() {
			if err := defaultReg.Register(sys); err != nil {
				// Built-in data is static; a failure here is a programming
				// error, not a runtime condition.
				panic(err)
			}
		}
	})
	return defaultReg
}

// Get looks a system up in the default registry.
func Get(name string) (*System, error) {
	return Default().Get(name)
}

// List lists the default registry.
func List() map[string]string {
	return Default().List()
}

// Names returns the default registry's system names in registration order.
func Names() []string {
	return Default().Names()
}
